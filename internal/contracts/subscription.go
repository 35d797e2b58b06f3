package contracts

import "time"

// Data type tags for subscription specs.
const (
	DataTypeFundamental = "fundamental"
)

// SubscriptionSpec describes how and where reference data for a universe
// root symbol is sourced. Immutable once constructed: it is created by a
// factory at universe construction and never mutated afterwards.
type SubscriptionSpec struct {
	Symbol           Symbol     `json:"symbol"`
	DataType         string     `json:"data_type"`
	Resolution       Resolution `json:"resolution"`
	SourceTimeZone   string     `json:"source_time_zone"`
	ExchangeTimeZone string     `json:"exchange_time_zone"`
	FillForward      bool       `json:"fill_forward"`
	ExtendedHours    bool       `json:"extended_hours"`
	IsInternal       bool       `json:"is_internal"`
	IsCustom         bool       `json:"is_custom"`
	IsFiltered       bool       `json:"is_filtered"`
	TickType         string     `json:"tick_type,omitempty"`
}

// SubscriptionChange is the diff the subscription manager produces for one
// selection tick: symbols entering and leaving the universe.
type SubscriptionChange struct {
	Time    time.Time `json:"time"`
	Added   []Symbol  `json:"added"`
	Removed []Symbol  `json:"removed"`
}

// Empty reports whether the change carries no additions or removals.
func (c SubscriptionChange) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}
