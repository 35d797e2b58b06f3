package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quantfabric/universe/internal/contracts"
)

func record(id string, marketCap, dollarVolume float64) contracts.Fundamental {
	return contracts.Fundamental{
		Symbol:       contracts.NewSymbol(id, contracts.MarketUS),
		Day:          time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		MarketCap:    marketCap,
		DollarVolume: dollarVolume,
		HasData:      true,
	}
}

func sentinel(id string) contracts.Fundamental {
	rec := record(id, 0, 0)
	rec.HasData = false
	return rec
}

func ids(symbols []contracts.Symbol) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, s.ID)
	}
	return out
}

func TestAll(t *testing.T) {
	records := []contracts.Fundamental{
		record("BBB", 1, 1),
		sentinel("GONE"),
		record("AAA", 2, 2),
	}

	got := All().Select(records)
	assert.Equal(t, []string{"BBB", "AAA"}, ids(got), "snapshot order, sentinels dropped")
}

func TestFieldAbove(t *testing.T) {
	records := []contracts.Fundamental{
		record("AAA", 10, 0),
		record("BBB", 6, 0),
		record("CCC", 5, 0),
		sentinel("DDD"),
	}

	tests := []struct {
		name  string
		field string
		min   float64
		want  []string
	}{
		{name: "strictly greater", field: contracts.FieldMarketCap, min: 6, want: []string{"AAA"}},
		{name: "all pass", field: contracts.FieldMarketCap, min: 0, want: []string{"AAA", "BBB", "CCC"}},
		{name: "unknown field passes nothing", field: "no_such_field", min: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldAbove(tt.field, tt.min).Select(records)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, ids(got))
			}
		})
	}
}

func TestFieldBelow(t *testing.T) {
	records := []contracts.Fundamental{
		record("AAA", 10, 0),
		record("BBB", 5, 0),
		sentinel("CCC"),
	}

	got := FieldBelow(contracts.FieldMarketCap, 10).Select(records)
	assert.Equal(t, []string{"BBB"}, ids(got), "strictly below, sentinel dropped")
}

func TestTopNBy(t *testing.T) {
	records := []contracts.Fundamental{
		record("AAA", 5, 0),
		record("BBB", 10, 0),
		record("CCC", 10, 0),
		record("DDD", 1, 0),
		sentinel("EEE"),
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "descending with stable ties", n: 3, want: []string{"BBB", "CCC", "AAA"}},
		{name: "n larger than candidates", n: 10, want: []string{"BBB", "CCC", "AAA", "DDD"}},
		{name: "zero", n: 0, want: nil},
		{name: "negative clamps to zero", n: -1, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopNBy(contracts.FieldMarketCap, tt.n).Select(records)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, ids(got))
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	records := []contracts.Fundamental{
		record("AAA", 10, 100),
		record("BBB", 5, 200),
		record("CCC", 8, 50),
	}

	t.Run("first rule order preserved", func(t *testing.T) {
		got := Intersect(
			TopNBy(contracts.FieldDollarVolume, 3),
			FieldAbove(contracts.FieldMarketCap, 6),
		).Select(records)

		// Dollar volume orders BBB, AAA, CCC; the cap filter drops BBB.
		assert.Equal(t, []string{"AAA", "CCC"}, ids(got))
	})

	t.Run("no rules selects nothing", func(t *testing.T) {
		assert.Empty(t, Intersect().Select(records))
	})

	t.Run("single rule passes through", func(t *testing.T) {
		got := Intersect(All()).Select(records)
		assert.Equal(t, []string{"AAA", "BBB", "CCC"}, ids(got))
	})
}
