package contracts

import "time"

// Fundamental attribute names usable with Field.
const (
	FieldMarketCap    = "market_cap"
	FieldDollarVolume = "dollar_volume"
	FieldPERatio      = "pe_ratio"
)

// Fundamental is one reference-data observation for one symbol on one day.
// Exactly one record exists per symbol per snapshot. A record with
// HasData=false is a sentinel for a symbol temporarily without fresh data;
// selection rules must tolerate sentinels.
type Fundamental struct {
	Symbol       Symbol    `json:"symbol"`
	Day          time.Time `json:"day"`
	Name         string    `json:"name,omitempty"`
	Sector       string    `json:"sector,omitempty"`
	MarketCap    float64   `json:"market_cap"`
	DollarVolume float64   `json:"dollar_volume"`
	PERatio      float64   `json:"pe_ratio"`
	HasData      bool      `json:"has_data"`
}

// RecordSymbol implements Record.
func (f Fundamental) RecordSymbol() Symbol {
	return f.Symbol
}

// Field returns the named numeric attribute. The second return value is
// false for unknown field names.
func (f Fundamental) Field(name string) (float64, bool) {
	switch name {
	case FieldMarketCap:
		return f.MarketCap, true
	case FieldDollarVolume:
		return f.DollarVolume, true
	case FieldPERatio:
		return f.PERatio, true
	default:
		return 0, false
	}
}
