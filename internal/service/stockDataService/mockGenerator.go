package stockDataService

import (
	"math/rand/v2"
	"time"
	"unicode/utf16"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
)

const (
	historyDays = 30
	dateLayout  = "2006-01-02"
	minVolume   = 1_000_000
	volumeSpan  = 5_000_000
)

var (
	five    = decimal.NewFromInt(5)
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
	highMul = decimal.RequireFromString("1.02")
	lowMul  = decimal.RequireFromString("0.98")
)

// HashFunc maps a ticker to a stable 32-bit hash.
type HashFunc func(s string) int32

// Rand is the subset of *rand.Rand used for synthetic series.
type Rand interface {
	Float64() float64
	Int64N(n int64) int64
}

// JavaStringHash is s[0]*31^(n-1) + ... + s[n-1] over UTF-16 code units with
// int32 overflow, so mock prices match the ones the legacy service produced.
func JavaStringHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(c)
	}
	return h
}

// globalRand uses the goroutine-safe top-level functions of math/rand/v2.
type globalRand struct{}

func (globalRand) Float64() float64      { return rand.Float64() }
func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }

type MockGenerator struct {
	hash HashFunc
	rnd  Rand
	now  func() time.Time
}

type MockOption func(g *MockGenerator)

func WithHash(hash HashFunc) MockOption {
	return func(g *MockGenerator) { g.hash = hash }
}

func WithRand(rnd Rand) MockOption {
	return func(g *MockGenerator) { g.rnd = rnd }
}

func WithClock(now func() time.Time) MockOption {
	return func(g *MockGenerator) { g.now = now }
}

func NewMockGenerator(opts ...MockOption) *MockGenerator {
	g := &MockGenerator{
		hash: JavaStringHash,
		rnd:  globalRand{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Price is a deterministic function of the ticker hash:
// 50 + |h| mod 500 + ((|h| mod 100) / 100 * 10 - 5), rounded to cents.
func (g *MockGenerator) Price(ticker string) decimal.Decimal {
	// widened before abs so math.MinInt32 stays positive
	h := int64(g.hash(ticker))
	if h < 0 {
		h = -h
	}

	basePrice := decimal.NewFromInt(50 + h%500)
	variation := decimal.NewFromInt(h % 100).Div(hundred).Mul(ten).Sub(five)

	return basePrice.Add(variation).Round(2)
}

// History returns one bar per calendar day from today back 29 days, most
// recent first. Day prices are drawn independently, unrounded, and are not
// reproducible.
func (g *MockGenerator) History(ticker string) []model.DailyBar {
	basePrice := g.Price(ticker)

	now := g.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	bars := make([]model.DailyBar, 0, historyDays)
	for i := 0; i < historyDays; i++ {
		u := (g.rnd.Float64() - 0.5) * 0.1
		dayPrice := basePrice.Mul(decimal.NewFromFloat(1 + u))

		bars = append(bars, model.DailyBar{
			Date:   today.AddDate(0, 0, -i).Format(dateLayout),
			Open:   dayPrice,
			High:   dayPrice.Mul(highMul),
			Low:    dayPrice.Mul(lowMul),
			Close:  dayPrice,
			Volume: minVolume + g.rnd.Int64N(volumeSpan),
		})
	}

	return bars
}
