package analyticsService

import (
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
)

const (
	SectorTechnology = "Technology"
	SectorHealthcare = "Healthcare"
	SectorFinance    = "Finance"
	SectorConsumer   = "Consumer"

	fallbackRecommendation = "VTI"
)

var recommendations = []string{"MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "META", "NFLX", "CRM"}

var (
	pointsPerAsset  = decimal.NewFromInt(5)
	pointsPerSector = decimal.RequireFromString("12.5")
	maxAssetPoints  = decimal.NewFromInt(50)
	maxSectorPoints = decimal.NewFromInt(50)
)

// Sector buckets a ticker by its first letter. It is a placeholder
// classification kept for parity with existing reports, not sector data.
func Sector(ticker string) string {
	upper := strings.ToUpper(ticker)
	switch {
	case strings.HasPrefix(upper, "A"), strings.HasPrefix(upper, "B"):
		return SectorTechnology
	case strings.HasPrefix(upper, "C"), strings.HasPrefix(upper, "D"):
		return SectorHealthcare
	case strings.HasPrefix(upper, "E"), strings.HasPrefix(upper, "F"):
		return SectorFinance
	default:
		return SectorConsumer
	}
}

// DiversificationScore is min(n*5, 50) + min(sectors*12.5, 50) rounded to
// one decimal, and exactly zero without holdings.
func DiversificationScore(holdings []model.Holding) decimal.Decimal {
	if len(holdings) == 0 {
		return decimal.Zero
	}

	sectors := make(map[string]struct{}, 4)
	for _, h := range holdings {
		sectors[Sector(h.Ticker)] = struct{}{}
	}

	assetScore := decimal.Min(pointsPerAsset.Mul(decimal.NewFromInt(int64(len(holdings)))), maxAssetPoints)
	sectorScore := decimal.Min(pointsPerSector.Mul(decimal.NewFromInt(int64(len(sectors)))), maxSectorPoints)

	return assetScore.Add(sectorScore).Round(1)
}

// RecommendAsset returns the first ticker of the fixed list that is not held.
func RecommendAsset(holdings []model.Holding) string {
	owned := make(map[string]struct{}, len(holdings))
	for _, h := range holdings {
		owned[strings.ToUpper(h.Ticker)] = struct{}{}
	}

	for _, ticker := range recommendations {
		if _, ok := owned[ticker]; !ok {
			return ticker
		}
	}

	return fallbackRecommendation
}
