package universe

import "github.com/quantfabric/universe/internal/contracts"

// ReferenceTimeZone is the fixed zone the fundamentals feed is pinned to.
// Source and exchange zones are both set to it: fundamentals are emitted
// once per day and carry no intraday exchange semantics.
const ReferenceTimeZone = "America/New_York"

// CreateFundamentalSpec builds the subscription spec for a fundamentals
// universe root symbol. Pure and total: the policy below is fixed for this
// data category and is not caller-configurable. Callers needing different
// policy define a different spec factory, not parameters to this one.
func CreateFundamentalSpec(symbol contracts.Symbol) contracts.SubscriptionSpec {
	return contracts.SubscriptionSpec{
		Symbol:           symbol,
		DataType:         contracts.DataTypeFundamental,
		Resolution:       contracts.ResolutionDaily,
		SourceTimeZone:   ReferenceTimeZone,
		ExchangeTimeZone: ReferenceTimeZone,
		FillForward:      false,
		ExtendedHours:    false,
		IsInternal:       true,
		IsCustom:         false,
		IsFiltered:       false,
		TickType:         "",
	}
}
