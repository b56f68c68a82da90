package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/couchcryptid/athletics-rankings-etl/internal/observability"
)

// RankingsTransformer implements Transformer using the domain parser and
// records line statistics as metrics.
type RankingsTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a RankingsTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *RankingsTransformer {
	return &RankingsTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

func (t *RankingsTransformer) Transform(_ context.Context, code, markup string) (domain.ResultSet, error) {
	rk, err := domain.ParseRankings(markup)
	if err != nil {
		return domain.ResultSet{}, err
	}

	t.metrics.Lines.Add(float64(rk.Stats.Lines))
	t.metrics.LinesRejected.Add(float64(rk.Stats.Rejected))
	t.metrics.RecordsParsed.Add(float64(rk.Stats.Accepted))
	t.metrics.RecordsPerPage.Observe(float64(rk.Stats.Accepted))

	t.logger.Debug("ranking page parsed",
		"event", code,
		"lines", rk.Stats.Lines,
		"accepted", rk.Stats.Accepted,
		"rejected", rk.Stats.Rejected,
	)

	return domain.NewResultSet(code, rk.Records), nil
}
