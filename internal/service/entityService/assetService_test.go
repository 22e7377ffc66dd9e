package entityService

import (
	"context"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAssetService(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	cache := newFakeCache()
	portfolios := NewPortfolioService(repo, cache)
	s := NewAssetService(repo, cache)

	portfolio, err := portfolios.Create(ctx, model.Portfolio{Name: "main", CreatedDate: time.Now().UTC()})
	if err != nil {
		t.Fatalf("Create portfolio: %v", err)
	}
	other, _ := portfolios.Create(ctx, model.Portfolio{Name: "other", CreatedDate: time.Now().UTC()})

	asset, err := s.Create(ctx, model.Asset{Ticker: "AAPL", Quantity: 10, AvgPrice: dec("100.005"), Portfolio: model.PortfolioRef{ID: portfolio.ID}})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if !asset.AvgPrice.Equal(dec("100.01")) {
		t.Errorf("avg price = %s, want 100.01", asset.AvgPrice)
	}
	if asset.Portfolio.Name != "main" {
		t.Errorf("portfolio name = %q, want main", asset.Portfolio.Name)
	}

	t.Run("duplicate ticker ignores case", func(t *testing.T) {
		_, err := s.Create(ctx, model.Asset{Ticker: "aapl", Quantity: 1, AvgPrice: dec("1"), Portfolio: model.PortfolioRef{ID: portfolio.ID}})
		requireValidationKey(t, err, "tickerexists")
	})

	t.Run("same ticker in another portfolio", func(t *testing.T) {
		if _, err := s.Create(ctx, model.Asset{Ticker: "AAPL", Quantity: 1, AvgPrice: dec("1"), Portfolio: model.PortfolioRef{ID: other.ID}}); err != nil {
			t.Errorf("Create() unexpected error: %v", err)
		}
	})

	t.Run("unknown portfolio", func(t *testing.T) {
		_, err := s.Create(ctx, model.Asset{Ticker: "IBM", Quantity: 1, AvgPrice: dec("1"), Portfolio: model.PortfolioRef{ID: 999}})
		requireValidationKey(t, err, "portfolionotfound")
	})

	t.Run("partial update", func(t *testing.T) {
		got, err := s.PartialUpdate(ctx, asset.ID, model.AssetChanges{Quantity: ptr(15)})
		if err != nil {
			t.Fatalf("PartialUpdate() unexpected error: %v", err)
		}
		if got.Quantity != 15 || got.Ticker != "AAPL" || !got.AvgPrice.Equal(dec("100.01")) {
			t.Errorf("PartialUpdate() = %+v", got)
		}
	})

	t.Run("full update moves asset", func(t *testing.T) {
		got, err := s.Update(ctx, model.Asset{ID: asset.ID, Ticker: "MSFT", Quantity: 2, AvgPrice: dec("3.5"), Portfolio: model.PortfolioRef{ID: other.ID}})
		if err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
		if got.Portfolio.ID != other.ID || got.Portfolio.Name != "other" || got.Ticker != "MSFT" {
			t.Errorf("Update() = %+v", got)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := s.PartialUpdate(ctx, 999, model.AssetChanges{Quantity: ptr(1)})
		requireValidationKey(t, err, "idnotfound")
	})
}
