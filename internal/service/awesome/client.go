package awesome

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"QuoteVault/internal/domain/models"
	drepo "QuoteVault/internal/domain/repository"
	xhttp "QuoteVault/pkg/http"
	"QuoteVault/pkg/util"
)

// Client implements a QuoteSource backed by the remote indicator API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a new indicator source client.
func New(baseURL string, timeout time.Duration) drepo.QuoteSource {
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// FetchAll retrieves all raw indicator records. The upstream top-level shape
// varies by integration (dictionary keyed by code, or plain array); both are
// flattened into a record slice in upstream order. Non-object entries are
// skipped.
func (c *Client) FetchAll(ctx context.Context) ([]map[string]interface{}, error) {
	var payload json.RawMessage
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/all",
	}, &payload)
	if err != nil {
		return nil, fmt.Errorf("fetch indicators: %w", err)
	}

	raws, err := splitRecords(payload)
	if err != nil {
		return nil, fmt.Errorf("decode indicators payload: %w", err)
	}

	records := make([]map[string]interface{}, 0, len(raws))
	for _, raw := range raws {
		var rec map[string]interface{}
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// splitRecords flattens the top-level payload into per-record raw values. The
// token walk keeps the upstream order for dictionary payloads, which decoding
// into a map would scramble.
func splitRecords(payload []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("unexpected top-level token %v", tok)
	}

	raws := make([]json.RawMessage, 0)
	for dec.More() {
		if delim == '{' {
			// consume the key
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

type historicalPoint struct {
	Timestamp string      `json:"timestamp"`
	High      interface{} `json:"high"`
}

// FetchHistorical retrieves the daily series for a currency code against the
// local reference currency, oldest first. The upstream emits newest first
// with unix-second string timestamps.
func (c *Client) FetchHistorical(ctx context.Context, code string, days int) ([]models.HistoricalPoint, error) {
	var raw []historicalPoint
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/daily/%s-BRL/%d", c.baseURL, code, days),
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetch historical %s: %w", code, err)
	}

	points := make([]models.HistoricalPoint, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		t, ok := util.ParseTime(raw[i].Timestamp)
		if !ok {
			continue
		}
		points = append(points, models.HistoricalPoint{
			Timestamp: t.Unix(),
			High:      util.ParseNumeric(raw[i].High),
		})
	}
	return points, nil
}

// Convert values an amount of a currency in the local reference currency,
// using the latest quoted bid. Stateless passthrough, not cached.
func (c *Client) Convert(ctx context.Context, code string, amount float64) (models.Conversion, error) {
	var resp map[string]struct {
		Bid interface{} `json:"bid"`
	}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/last/%s-BRL", c.baseURL, code),
	}, &resp)
	if err != nil {
		return models.Conversion{}, fmt.Errorf("convert %s: %w", code, err)
	}

	// The payload is keyed by the concatenated pair, e.g. "USDBRL".
	quote, ok := resp[code+"BRL"]
	if !ok {
		return models.Conversion{}, fmt.Errorf("convert %s: no quote in response", code)
	}
	rate := util.ParseNumeric(quote.Bid)
	return models.Conversion{Code: code, Amount: amount, Rate: rate, Result: amount * rate}, nil
}
