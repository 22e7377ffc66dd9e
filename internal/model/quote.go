package model

import "github.com/shopspring/decimal"

type PriceQuote struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}

type HistoricalData struct {
	Ticker string     `json:"ticker"`
	Data   []DailyBar `json:"data"`
}

// DailyBar is one OHLCV record, Date is formatted as YYYY-MM-DD.
type DailyBar struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}
