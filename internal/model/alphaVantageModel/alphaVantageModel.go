package alphaVantageModel

// Status fields are set by the upstream instead of data when the call is
// throttled or rejected.
type Status struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

type GlobalQuoteResponse struct {
	Status
	GlobalQuote map[string]string `json:"Global Quote"`
}

type TimeSeriesDailyResponse struct {
	Status
	TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`
}

const (
	PriceField  = "05. price"
	OpenField   = "1. open"
	HighField   = "2. high"
	LowField    = "3. low"
	CloseField  = "4. close"
	VolumeField = "5. volume"
)
