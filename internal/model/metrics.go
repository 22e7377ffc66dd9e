package model

import "github.com/shopspring/decimal"

type MetricsReport struct {
	TotalValue           decimal.Decimal `json:"totalValue"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	TotalGainLoss        decimal.Decimal `json:"totalGainLoss"`
	TotalGainLossPercent decimal.Decimal `json:"totalGainLossPercent"`
	Assets               []AssetDetail   `json:"assets"`
	DiversificationScore decimal.Decimal `json:"diversificationScore"`
	RecommendedAsset     string          `json:"recommendedAsset"`
}

type AssetDetail struct {
	Ticker          string          `json:"ticker"`
	Quantity        int             `json:"quantity"`
	AvgPrice        decimal.Decimal `json:"avgPrice"`
	CurrentPrice    decimal.Decimal `json:"currentPrice"`
	CurrentValue    decimal.Decimal `json:"currentValue"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	GainLossPercent decimal.Decimal `json:"gainLossPercent"`
}
