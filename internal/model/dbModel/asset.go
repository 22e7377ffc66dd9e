package dbModel

import "github.com/shopspring/decimal"

type Asset struct {
	ID            int64           `db:"id"`
	Ticker        string          `db:"ticker"`
	Quantity      int             `db:"quantity"`
	AvgPrice      decimal.Decimal `db:"avg_price"`
	PortfolioID   int64           `db:"portfolio_id"`
	PortfolioName string          `db:"portfolio_name"`
}

type Holding struct {
	Ticker   string          `db:"ticker"`
	Quantity int             `db:"quantity"`
	AvgPrice decimal.Decimal `db:"avg_price"`
}
