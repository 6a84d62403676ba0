package news

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"QuoteVault/internal/domain/models"
	drepo "QuoteVault/internal/domain/repository"
	xhttp "QuoteVault/pkg/http"
)

// Client implements NewsSource against the headlines API. The API key is
// injected as a query parameter on every request.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

func New(baseURL, apiKey string, timeout time.Duration) drepo.NewsSource {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type headlinesResponse struct {
	Status   string               `json:"status"`
	Articles []models.NewsArticle `json:"articles"`
}

// TopHeadlines fetches current headlines. Stateless; errors propagate to the
// caller since there is no cached fallback for news.
func (c *Client) TopHeadlines(ctx context.Context, country, category string, pageSize int) ([]models.NewsArticle, error) {
	var resp headlinesResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/top-headlines",
		QueryParams: map[string][]string{
			"country":  {country},
			"category": {category},
			"pageSize": {strconv.Itoa(pageSize)},
			"apiKey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	if resp.Status != "" && resp.Status != "ok" {
		return nil, fmt.Errorf("headlines status %q", resp.Status)
	}
	return resp.Articles, nil
}
