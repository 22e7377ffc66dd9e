package healthService

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type QuoteApi interface {
	GetGlobalQuote(ctx context.Context, ticker string) (decimal.Decimal, error)
}

type feedState struct {
	health     model.ComponentHealth
	observedAt time.Time
}

// HealthService reports dependency state. The price feed state follows the
// outcome of real price lookups and never gates them.
type HealthService struct {
	db            Pinger
	redis         Pinger
	quoteApi      QuoteApi
	probeTicker   string
	probeInterval time.Duration
	now           func() time.Time
	priceFeed     atomic.Pointer[feedState]
}

func New(db, redis Pinger, quoteApi QuoteApi, probeTicker string, probeInterval time.Duration) *HealthService {
	s := &HealthService{
		db:            db,
		redis:         redis,
		quoteApi:      quoteApi,
		probeTicker:   probeTicker,
		probeInterval: probeInterval,
		now:           time.Now,
	}
	s.priceFeed.Store(&feedState{health: model.ComponentHealth{Status: model.StatusUnknown}})
	return s
}

// RecordPriceFeed stores the outcome of an upstream lookup. An unknown ticker
// is an answer from a working feed.
func (s *HealthService) RecordPriceFeed(ctx context.Context, err error) {
	if err == nil || errors.Is(err, externalApi.ErrNotFound) {
		s.priceFeed.Store(&feedState{health: model.ComponentHealth{Status: model.StatusUp}, observedAt: s.now()})
		return
	}

	prev := s.priceFeed.Load().health.Status
	s.priceFeed.Store(&feedState{
		health:     model.ComponentHealth{Status: model.StatusDegraded, Error: err.Error()},
		observedAt: s.now(),
	})

	if prev != model.StatusDegraded {
		slog.Warn(
			"price feed degraded",
			slog.String("rqID", utils.GetRequestIDFromCtx(ctx)),
			slog.String("op", "HealthService.RecordPriceFeed"),
			slog.String("err", err.Error()),
		)
	}
}

// ProbePriceFeed queries the upstream only when no lookup was recorded during
// the last probe interval, so an active service spends no quota on probes.
func (s *HealthService) ProbePriceFeed(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "HealthService.ProbePriceFeed"

	last := s.priceFeed.Load()
	if !last.observedAt.IsZero() && s.now().Sub(last.observedAt) < s.probeInterval {
		slog.Debug("price feed state is fresh, probe skipped", slog.String("rqID", rqID), slog.String("op", op))
		return nil
	}

	_, err := s.quoteApi.GetGlobalQuote(ctx, s.probeTicker)
	s.RecordPriceFeed(ctx, err)
	if err != nil && !errors.Is(err, externalApi.ErrNotFound) {
		return err
	}
	return nil
}

func (s *HealthService) Check(ctx context.Context) model.Health {
	health := model.Health{
		Status: model.StatusUp,
		Components: map[string]model.ComponentHealth{
			"db":        pingComponent(ctx, s.db),
			"redis":     pingComponent(ctx, s.redis),
			"priceFeed": s.priceFeed.Load().health,
		},
	}

	// only storage components affect the overall status
	if health.Components["db"].Status != model.StatusUp || health.Components["redis"].Status != model.StatusUp {
		health.Status = model.StatusDown
	}

	return health
}

func pingComponent(ctx context.Context, p Pinger) model.ComponentHealth {
	if err := p.Ping(ctx); err != nil {
		return model.ComponentHealth{Status: model.StatusDown, Error: err.Error()}
	}
	return model.ComponentHealth{Status: model.StatusUp}
}
