package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/internal/selection"
	"github.com/quantfabric/universe/internal/universe"
	"github.com/quantfabric/universe/pkg/logger"
)

type stubProvider struct {
	records []contracts.Fundamental
	err     error
}

func (p *stubProvider) SnapshotAt(ctx context.Context, spec contracts.SubscriptionSpec, utc time.Time) (*contracts.Snapshot, error) {
	if p.err != nil {
		return nil, p.err
	}
	return contracts.NewSnapshot(utc, p.records), nil
}

type captureSink struct {
	applied [][]contracts.Symbol
}

func (s *captureSink) Apply(utc time.Time, selected []contracts.Symbol) contracts.SubscriptionChange {
	s.applied = append(s.applied, selected)
	return contracts.SubscriptionChange{Time: utc, Added: selected}
}

func TestSelectionJob_Run(t *testing.T) {
	uni, err := universe.NewFundamental(contracts.DefaultUniverseSettings(), selection.FieldAbove(contracts.FieldMarketCap, 6))
	require.NoError(t, err)

	provider := &stubProvider{
		records: []contracts.Fundamental{
			{Symbol: contracts.NewSymbol("AAA", contracts.MarketUS), MarketCap: 10, HasData: true},
			{Symbol: contracts.NewSymbol("BBB", contracts.MarketUS), MarketCap: 5, HasData: true},
		},
	}
	sink := &captureSink{}

	job := NewSelectionJob(uni, provider, sink, logger.Nop())
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, sink.applied, 1)
	require.Len(t, sink.applied[0], 1)
	assert.Equal(t, "AAA", sink.applied[0][0].ID)
}

func TestSelectionJob_Run_ProviderError(t *testing.T) {
	uni, err := universe.NewFundamental(contracts.DefaultUniverseSettings(), selection.All())
	require.NoError(t, err)

	providerErr := errors.New("store unavailable")
	sink := &captureSink{}

	job := NewSelectionJob(uni, &stubProvider{err: providerErr}, sink, logger.Nop())

	err = job.Run(context.Background())
	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, sink.applied, "sink must not run when the snapshot fails")
}

func TestSelectionJob_Metadata(t *testing.T) {
	uni, err := universe.NewFundamental(contracts.DefaultUniverseSettings(), selection.All())
	require.NoError(t, err)

	job := NewSelectionJob(uni, &stubProvider{}, &captureSink{}, logger.Nop())
	assert.Equal(t, "universe_selection", job.Name())
	assert.NotEmpty(t, job.Schedule())
}
