package fundamental

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfabric/universe/pkg/httputil"
	"github.com/quantfabric/universe/pkg/logger"
)

const screenerPage = `<html><body>
<table class="screener">
  <tbody>
    <tr><td>AAPL</td><td>Apple Inc</td><td>Technology</td><td>3.2B</td><td>450M</td><td>28.5</td></tr>
    <tr><td>MSFT</td><td>Microsoft</td><td>Technology</td><td>2,900.1M</td><td>380K</td><td>-</td></tr>
    <tr><td></td><td>blank symbol is skipped</td><td>-</td><td>-</td><td>-</td><td>-</td></tr>
    <tr><td>SHORT</td><td>too few cells</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseAbbrevNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "1,234.5", want: 1234.5},
		{raw: "12.3B", want: 12.3e9},
		{raw: "450M", want: 450e6},
		{raw: "380K", want: 380e3},
		{raw: " 42 ", want: 42},
		{raw: "-", want: 0},
		{raw: "", want: 0},
		{raw: "n/a", want: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			assert.InDelta(t, tt.want, parseAbbrevNumber(tt.raw), 1e-9)
		})
	}
}

func TestSource_FetchAll(t *testing.T) {
	var pagesServed []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "1" {
			pagesServed = append(pagesServed, 1)
			fmt.Fprint(w, screenerPage)
			return
		}
		// Empty page ends the walk.
		fmt.Fprint(w, `<html><body><table class="screener"><tbody></tbody></table></body></html>`)
	}))
	defer server.Close()

	src := NewSource(httputil.New(logger.Nop()), server.URL, 10, 100, logger.Nop())

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	records, err := src.FetchAll(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, records, 2, "blank and malformed rows are skipped")

	assert.Equal(t, []int{1}, pagesServed)

	aapl := records[0]
	assert.Equal(t, "AAPL", aapl.Symbol.ID)
	assert.Equal(t, "Apple Inc", aapl.Name)
	assert.Equal(t, "Technology", aapl.Sector)
	assert.InDelta(t, 3.2e9, aapl.MarketCap, 1e-3)
	assert.InDelta(t, 450e6, aapl.DollarVolume, 1e-3)
	assert.InDelta(t, 28.5, aapl.PERatio, 1e-9)
	assert.Equal(t, day, aapl.Day)
	assert.True(t, aapl.HasData)

	msft := records[1]
	assert.InDelta(t, 2900.1e6, msft.MarketCap, 1e-3)
	assert.InDelta(t, 380e3, msft.DollarVolume, 1e-3)
	assert.Zero(t, msft.PERatio)
}

func TestSource_FetchAll_StopsAtPageCap(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, screenerPage)
	}))
	defer server.Close()

	src := NewSource(httputil.New(logger.Nop()), server.URL, 3, 1000, logger.Nop())

	records, err := src.FetchAll(context.Background(), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	assert.Len(t, records, 6)
}
