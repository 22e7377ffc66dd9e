package model

import "github.com/shopspring/decimal"

type Asset struct {
	ID        int64
	Ticker    string
	Quantity  int
	AvgPrice  decimal.Decimal
	Portfolio PortfolioRef
}

type PortfolioRef struct {
	ID   int64
	Name string
}

type AssetChanges struct {
	Ticker      *string
	Quantity    *int
	AvgPrice    *decimal.Decimal
	PortfolioID *int64
}

// Holding is a read-only position snapshot consumed by the valuation engine.
type Holding struct {
	Ticker   string
	Quantity int
	AvgPrice decimal.Decimal
}
