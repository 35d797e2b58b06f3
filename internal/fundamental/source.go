package fundamental

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/pkg/httputil"
	"github.com/quantfabric/universe/pkg/logger"
)

// Source scrapes the fundamentals reference table from the screener
// endpoint and feeds the store. Paged; one request per page, throttled.
type Source struct {
	httpClient *httputil.Client
	limiter    *rate.Limiter
	baseURL    string
	maxPages   int
	market     string
	logger     *logger.Logger
}

// NewSource creates a fundamentals source.
func NewSource(httpClient *httputil.Client, baseURL string, maxPages int, requestsPerSec float64, log *logger.Logger) *Source {
	return &Source{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxPages:   maxPages,
		market:     contracts.MarketUS,
		logger:     log,
	}
}

// FetchAll fetches fundamentals for every listed symbol, walking screener
// pages until an empty page or the page cap.
func (s *Source) FetchAll(ctx context.Context, day time.Time) ([]contracts.Fundamental, error) {
	all := make([]contracts.Fundamental, 0)

	for page := 1; page <= s.maxPages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return all, err
		}

		url := fmt.Sprintf("%s/screener?page=%d", s.baseURL, page)

		resp, err := s.httpClient.Get(ctx, url)
		if err != nil {
			s.logger.WithError(err).WithField("page", page).Warn("Failed to fetch screener page")
			continue
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			s.logger.WithError(err).WithField("page", page).Warn("Failed to parse screener page")
			continue
		}

		records := s.parseScreenerTable(doc, day)
		if len(records) == 0 {
			break
		}

		all = append(all, records...)

		s.logger.WithFields(map[string]interface{}{
			"page":  page,
			"count": len(records),
		}).Debug("Fetched screener page")
	}

	s.logger.WithField("count", len(all)).Info("Fetched fundamentals")
	return all, nil
}

// parseScreenerTable extracts fundamental rows from a screener document.
// Expected columns: symbol | name | sector | market cap | dollar volume | P/E.
func (s *Source) parseScreenerTable(doc *goquery.Document, day time.Time) []contracts.Fundamental {
	records := make([]contracts.Fundamental, 0)

	doc.Find("table.screener tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}

		id := strings.TrimSpace(cells.Eq(0).Text())
		if id == "" {
			return
		}

		records = append(records, contracts.Fundamental{
			Symbol:       contracts.NewSymbol(id, s.market),
			Day:          day,
			Name:         strings.TrimSpace(cells.Eq(1).Text()),
			Sector:       strings.TrimSpace(cells.Eq(2).Text()),
			MarketCap:    parseAbbrevNumber(cells.Eq(3).Text()),
			DollarVolume: parseAbbrevNumber(cells.Eq(4).Text()),
			PERatio:      parseAbbrevNumber(cells.Eq(5).Text()),
			HasData:      true,
		})
	})

	return records
}

// parseAbbrevNumber parses screener numbers like "1,234.5", "12.3B" or
// "450M". Blank and dash cells parse to zero.
func parseAbbrevNumber(raw string) float64 {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, ",", "")
	if text == "" || text == "-" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(text, "B"):
		multiplier = 1e9
		text = strings.TrimSuffix(text, "B")
	case strings.HasSuffix(text, "M"):
		multiplier = 1e6
		text = strings.TrimSuffix(text, "M")
	case strings.HasSuffix(text, "K"):
		multiplier = 1e3
		text = strings.TrimSuffix(text, "K")
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	return value * multiplier
}
