package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// FeedItem is one product row in a supplier's JSON feed.
type FeedItem struct {
	Ref         string          `json:"ref"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// FeedPage is one page of the feed. NextPage is nil on the last page.
type FeedPage struct {
	Items    []FeedItem `json:"items"`
	NextPage *int       `json:"next_page"`
}

// FeedClient fetches supplier product feeds. Feeds follow a simple paginated
// JSON contract: GET {feed_url}?page=N returns a FeedPage.
type FeedClient struct {
	httpClient *http.Client
}

func NewFeedClient(timeout time.Duration) *FeedClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FeedClient{httpClient: &http.Client{Timeout: timeout}}
}

// FetchPage retrieves one page of the feed at feedURL.
func (c *FeedClient) FetchPage(ctx context.Context, feedURL string, page int) (*FeedPage, error) {
	url := fmt.Sprintf("%s?page=%d", feedURL, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: returned %d", resp.StatusCode)
	}

	var result FeedPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("feed: decode response: %w", err)
	}
	return &result, nil
}
