package contracts

import "fmt"

// Market identifiers
const (
	MarketUS = "usa"
)

// Symbol identifies one tradable entity within a market.
// Symbols are plain comparable values: two Symbols are equal iff they
// denote the same entity, and equality is stable for the process lifetime.
type Symbol struct {
	ID     string `json:"id"`
	Market string `json:"market"`
}

// NewSymbol creates a symbol for the given identifier and market.
func NewSymbol(id, market string) Symbol {
	return Symbol{ID: id, Market: market}
}

// IsZero reports whether the symbol is the zero value.
func (s Symbol) IsZero() bool {
	return s.ID == "" && s.Market == ""
}

// String returns "ID(market)" for logging.
func (s Symbol) String() string {
	if s.Market == "" {
		return s.ID
	}
	return fmt.Sprintf("%s(%s)", s.ID, s.Market)
}

// UniverseSymbol returns the well-known sentinel symbol representing the
// whole fundamentals feed for a market. Universe instances constructed
// without an explicit symbol default to UniverseSymbol(MarketUS).
func UniverseSymbol(market string) Symbol {
	return Symbol{
		ID:     "universe-fundamental-" + market,
		Market: market,
	}
}
