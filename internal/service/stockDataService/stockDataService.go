package stockDataService

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
)

type StockApi interface {
	GetGlobalQuote(ctx context.Context, ticker string) (decimal.Decimal, error)
	GetDailySeries(ctx context.Context, ticker string) ([]model.DailyBar, error)
}

// FeedObserver receives the outcome of every upstream lookup.
type FeedObserver interface {
	RecordPriceFeed(ctx context.Context, err error)
}

// StockDataService never fails outward: any upstream error is answered with
// synthetic data from the mock generator. There are no retries.
type StockDataService struct {
	api       StockApi
	mock      *MockGenerator
	observers []FeedObserver
}

type Option func(s *StockDataService)

func WithFeedObserver(o FeedObserver) Option {
	return func(s *StockDataService) { s.observers = append(s.observers, o) }
}

func New(api StockApi, mock *MockGenerator, opts ...Option) *StockDataService {
	s := &StockDataService{api: api, mock: mock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StockDataService) notify(ctx context.Context, err error) {
	for _, o := range s.observers {
		o.RecordPriceFeed(ctx, err)
	}
}

func (s *StockDataService) GetCurrentPrice(ctx context.Context, ticker string) decimal.Decimal {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "StockDataService.GetCurrentPrice"

	price, err := s.api.GetGlobalQuote(ctx, ticker)
	s.notify(ctx, err)
	if err != nil {
		mockPrice := s.mock.Price(ticker)
		slog.Warn(
			"price feed unavailable, using mock price",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("ticker", ticker),
			slog.String("err", err.Error()),
			slog.String("mockPrice", mockPrice.String()),
		)
		return mockPrice
	}

	return price.Round(2)
}

func (s *StockDataService) GetQuote(ctx context.Context, ticker string) model.PriceQuote {
	return model.PriceQuote{Ticker: ticker, Price: s.GetCurrentPrice(ctx, ticker)}
}

func (s *StockDataService) GetHistoricalData(ctx context.Context, ticker string) model.HistoricalData {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "StockDataService.GetHistoricalData"

	bars, err := s.api.GetDailySeries(ctx, ticker)
	s.notify(ctx, err)
	if err != nil {
		slog.Warn(
			"price feed unavailable, using mock history",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("ticker", ticker),
			slog.String("err", err.Error()),
		)
		return model.HistoricalData{Ticker: ticker, Data: s.mock.History(ticker)}
	}

	if len(bars) > historyDays {
		bars = bars[:historyDays]
	}

	return model.HistoricalData{Ticker: ticker, Data: bars}
}
