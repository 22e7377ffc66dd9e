package stockDataService

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fixedRand struct {
	float float64
}

func (r fixedRand) Float64() float64      { return r.float }
func (r fixedRand) Int64N(n int64) int64 { return n - 1 }

func TestJavaStringHash(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{in: "", want: 0},
		{in: "a", want: 97},
		{in: "AAPL", want: 2001436},
		// wraps past int32
		{in: "MICROSOFT", want: -1602600754},
	}

	for _, tt := range tests {
		if got := JavaStringHash(tt.in); got != tt.want {
			t.Errorf("JavaStringHash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMockGenerator_Price(t *testing.T) {
	tests := []struct {
		name string
		gen  *MockGenerator
		in   string
		want string
	}{
		{name: "AAPL", gen: NewMockGenerator(), in: "AAPL", want: "484.60"},
		{name: "empty ticker", gen: NewMockGenerator(), in: "", want: "45.00"},
		{
			name: "min int32 hash",
			gen:  NewMockGenerator(WithHash(func(string) int32 { return math.MinInt32 })),
			in:   "ANY",
			want: "197.80",
		},
		{
			name: "negative hash uses absolute value",
			gen:  NewMockGenerator(WithHash(func(string) int32 { return -2001436 })),
			in:   "ANY",
			want: "484.60",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gen.Price(tt.in)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Price(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMockGenerator_PriceIsDeterministic(t *testing.T) {
	g := NewMockGenerator()
	for _, ticker := range []string{"MSFT", "GOOGL", "brk.b", "Ω"} {
		first := g.Price(ticker)
		for i := 0; i < 5; i++ {
			if got := g.Price(ticker); !got.Equal(first) {
				t.Fatalf("Price(%q) changed between calls: %s != %s", ticker, got, first)
			}
		}
		if first.LessThan(decimal.NewFromInt(45)) || first.GreaterThan(decimal.NewFromInt(554)) {
			t.Errorf("Price(%q) = %s is out of the [45, 554] range", ticker, first)
		}
	}
}

func TestMockGenerator_HistoryWithInjectedRand(t *testing.T) {
	clock := func() time.Time {
		// 2024-03-01 in UTC even though the local date is already March 2nd
		return time.Date(2024, time.March, 2, 1, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))
	}
	g := NewMockGenerator(WithRand(fixedRand{float: 0.5}), WithClock(clock))

	bars := g.History("AAPL")
	if len(bars) != historyDays {
		t.Fatalf("len(History) = %d, want %d", len(bars), historyDays)
	}

	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if want := today.Format(dateLayout); bars[0].Date != want {
		t.Errorf("first date = %s, want %s", bars[0].Date, want)
	}
	// 2024 is a leap year, so the oldest bar is February 1st
	oldest := today.AddDate(0, 0, -(historyDays - 1))
	if want := oldest.Format(dateLayout); want != "2024-02-01" || bars[len(bars)-1].Date != want {
		t.Errorf("last date = %s, want %s", bars[len(bars)-1].Date, want)
	}

	wantPrice := decimal.RequireFromString("484.60")
	wantHigh := decimal.RequireFromString("494.292")
	wantLow := decimal.RequireFromString("474.908")

	for i, bar := range bars {
		if !bar.Open.Equal(wantPrice) || !bar.Close.Equal(wantPrice) {
			t.Errorf("bar %d open/close = %s/%s, want %s", i, bar.Open, bar.Close, wantPrice)
		}
		if !bar.High.Equal(wantHigh) {
			t.Errorf("bar %d high = %s, want %s", i, bar.High, wantHigh)
		}
		if !bar.Low.Equal(wantLow) {
			t.Errorf("bar %d low = %s, want %s", i, bar.Low, wantLow)
		}
		if bar.Volume != 5_999_999 {
			t.Errorf("bar %d volume = %d, want 5999999", i, bar.Volume)
		}
	}
}

func TestMockGenerator_HistoryBounds(t *testing.T) {
	g := NewMockGenerator()
	base := g.Price("NVDA")
	lowest := base.Mul(decimal.RequireFromString("0.95"))
	highest := base.Mul(decimal.RequireFromString("1.05"))

	bars := g.History("NVDA")

	seen := make(map[string]struct{}, len(bars))
	for i, bar := range bars {
		if _, ok := seen[bar.Date]; ok {
			t.Fatalf("duplicate date %s", bar.Date)
		}
		seen[bar.Date] = struct{}{}

		if i > 0 {
			prev, _ := time.Parse(dateLayout, bars[i-1].Date)
			cur, _ := time.Parse(dateLayout, bar.Date)
			if prev.Sub(cur) != 24*time.Hour {
				t.Errorf("dates %s and %s are not consecutive", bars[i-1].Date, bar.Date)
			}
		}

		if bar.Close.LessThan(lowest) || bar.Close.GreaterThan(highest) {
			t.Errorf("bar %d close = %s outside [%s, %s]", i, bar.Close, lowest, highest)
		}
		if !bar.Open.Equal(bar.Close) {
			t.Errorf("bar %d open %s != close %s", i, bar.Open, bar.Close)
		}
		if !bar.High.Equal(bar.Close.Mul(highMul)) || !bar.Low.Equal(bar.Close.Mul(lowMul)) {
			t.Errorf("bar %d high/low = %s/%s, not derived from close %s", i, bar.High, bar.Low, bar.Close)
		}
		if bar.Volume < minVolume || bar.Volume >= minVolume+volumeSpan {
			t.Errorf("bar %d volume = %d out of range", i, bar.Volume)
		}
	}
}
