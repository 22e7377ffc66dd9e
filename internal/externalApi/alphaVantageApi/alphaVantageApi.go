package alphaVantageApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/alphaVantageModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const queryPath = "/query"

type AlphaVantageApi struct {
	client *resty.Client
	apiKey string
}

func New(cfg *config.Config) *AlphaVantageApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.AlphaVantage.Url)
	return &AlphaVantageApi{client: client, apiKey: cfg.API.AlphaVantage.ApiKey}
}

func (a *AlphaVantageApi) GetGlobalQuote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AlphaVantageApi.GetGlobalQuote"

	slog.Debug("start request", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	body, err := a.query(ctx, "GLOBAL_QUOTE", ticker)
	if err != nil {
		return decimal.Decimal{}, err
	}

	resp := alphaVantageModel.GlobalQuoteResponse{}
	err = json.Unmarshal(body, &resp)
	if err != nil {
		slog.Error("can't unmarshall response into GlobalQuoteResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return decimal.Decimal{}, fmt.Errorf("%w: %s", externalApi.ErrMalformedResponse, err.Error())
	}

	if err = checkStatus(resp.Status); err != nil {
		slog.Warn("upstream refused quote", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return decimal.Decimal{}, err
	}

	rawPrice, ok := resp.GlobalQuote[alphaVantageModel.PriceField]
	if !ok {
		return decimal.Decimal{}, externalApi.ErrNotFound
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q", externalApi.ErrMalformedResponse, rawPrice)
	}

	slog.Debug("request complete", slog.String("rqID", rqID), slog.String("op", op), slog.String("price", price.String()))

	return price, nil
}

// GetDailySeries returns daily bars ordered from the most recent date.
func (a *AlphaVantageApi) GetDailySeries(ctx context.Context, ticker string) ([]model.DailyBar, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AlphaVantageApi.GetDailySeries"

	slog.Debug("start request", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	body, err := a.query(ctx, "TIME_SERIES_DAILY", ticker)
	if err != nil {
		return nil, err
	}

	resp := alphaVantageModel.TimeSeriesDailyResponse{}
	err = json.Unmarshal(body, &resp)
	if err != nil {
		slog.Error("can't unmarshall response into TimeSeriesDailyResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%w: %s", externalApi.ErrMalformedResponse, err.Error())
	}

	if err = checkStatus(resp.Status); err != nil {
		slog.Warn("upstream refused time series", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if len(resp.TimeSeries) == 0 {
		return nil, externalApi.ErrNotFound
	}

	bars, err := parseTimeSeries(resp.TimeSeries)
	if err != nil {
		slog.Error("can't parse time series", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	slog.Debug("request complete", slog.String("rqID", rqID), slog.String("op", op), slog.Int("bars", len(bars)))

	return bars, nil
}

func (a *AlphaVantageApi) query(ctx context.Context, function, ticker string) ([]byte, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"function": function,
			"symbol":   ticker,
			"apikey":   a.apiKey,
		}).
		Get(queryPath)
	if err != nil {
		slog.Error("error while dialing AlphaVantageApi", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return nil, err
	}

	if resp.IsError() {
		slog.Error("AlphaVantageApi responded with error status", slog.String("rqID", rqID), slog.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: %d", externalApi.ErrUnexpectedStatus, resp.StatusCode())
	}

	return resp.Body(), nil
}

func checkStatus(status alphaVantageModel.Status) error {
	switch {
	case status.Note != "":
		return fmt.Errorf("%w: %s", externalApi.ErrRateLimited, status.Note)
	case status.Information != "":
		return fmt.Errorf("%w: %s", externalApi.ErrRateLimited, status.Information)
	case status.ErrorMessage != "":
		return fmt.Errorf("%w: %s", externalApi.ErrRejected, status.ErrorMessage)
	}
	return nil
}

func parseTimeSeries(series map[string]map[string]string) ([]model.DailyBar, error) {
	bars := make([]model.DailyBar, 0, len(series))

	for date, fields := range series {
		bar := model.DailyBar{Date: date}

		var err error
		for field, dst := range map[string]*decimal.Decimal{
			alphaVantageModel.OpenField:  &bar.Open,
			alphaVantageModel.HighField:  &bar.High,
			alphaVantageModel.LowField:   &bar.Low,
			alphaVantageModel.CloseField: &bar.Close,
		} {
			*dst, err = decimal.NewFromString(fields[field])
			if err != nil {
				return nil, fmt.Errorf("%w: %s %s = %q", externalApi.ErrMalformedResponse, date, field, fields[field])
			}
		}

		bar.Volume, err = strconv.ParseInt(fields[alphaVantageModel.VolumeField], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s volume = %q", externalApi.ErrMalformedResponse, date, fields[alphaVantageModel.VolumeField])
		}

		bars = append(bars, bar)
	}

	// ISO dates sort lexically
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date > bars[j].Date })

	return bars, nil
}
