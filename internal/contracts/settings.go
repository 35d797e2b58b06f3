package contracts

import "time"

// Resolution of downstream data subscriptions.
type Resolution string

const (
	ResolutionDaily  Resolution = "daily"
	ResolutionHourly Resolution = "hourly"
	ResolutionMinute Resolution = "minute"
)

// NormalizationMode controls how downstream price data is adjusted.
type NormalizationMode string

const (
	NormalizationAdjusted NormalizationMode = "adjusted"
	NormalizationRaw      NormalizationMode = "raw"
)

// UniverseSettings describes how symbols entering the universe are
// subscribed downstream. The engine holds and forwards these unchanged;
// only the subscription manager interprets them.
type UniverseSettings struct {
	Resolution            Resolution        `json:"resolution"`
	Leverage              float64           `json:"leverage"`
	FillForward           bool              `json:"fill_forward"`
	ExtendedMarketHours   bool              `json:"extended_market_hours"`
	MinimumTimeInUniverse time.Duration     `json:"minimum_time_in_universe"`
	DataNormalizationMode NormalizationMode `json:"data_normalization_mode"`
}

// DefaultUniverseSettings returns the settings used when a universe is
// constructed without explicit overrides.
func DefaultUniverseSettings() UniverseSettings {
	return UniverseSettings{
		Resolution:            ResolutionDaily,
		Leverage:              1.0,
		FillForward:           true,
		ExtendedMarketHours:   false,
		MinimumTimeInUniverse: 24 * time.Hour,
		DataNormalizationMode: NormalizationAdjusted,
	}
}
