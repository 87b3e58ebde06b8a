package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	BulkDefaultCards = "default_cards"
	BulkAllCards     = "all_cards"

	DefaultBaseURL = "https://api.scryfall.com/bulk-data/"

	defaultUserAgent = "go-skynet/1.0"
	defaultAPIRetry  = 5
)

// BulkData describes one of the downloadable bulk files.
type BulkData struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	DownloadURI string    `json:"download_uri"`
	UpdatedAt   time.Time `json:"updated_at"`
	Size        int64     `json:"size"`
}

type Client struct {
	BaseURL string

	client *retryablehttp.Client
}

type limitTransport struct {
	Parent    http.RoundTripper
	UserAgent string
	Limiter   *rate.Limiter
}

func (t *limitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := t.Limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", t.UserAgent)
	req.Header.Set("Accept", "application/json;q=0.9,*/*;q=0.8")
	return t.Parent.RoundTrip(req)
}

func NewClient() *Client {
	sc := Client{}
	sc.BaseURL = DefaultBaseURL
	sc.client = retryablehttp.NewClient()
	sc.client.Logger = nil
	sc.client.RetryMax = defaultAPIRetry
	sc.client.HTTPClient.Transport = &limitTransport{
		Parent:    sc.client.HTTPClient.Transport,
		UserAgent: defaultUserAgent,

		// Upstream asks for 50-100ms between requests
		Limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
	return &sc
}

func (sc *Client) get(ctx context.Context, link string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := sc.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, link)
	}
	return resp, nil
}

// BulkDataInfo retrieves the metadata of the bulk file of the given kind.
func (sc *Client) BulkDataInfo(ctx context.Context, kind string) (*BulkData, error) {
	resp, err := sc.get(ctx, sc.BaseURL+kind)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info BulkData
	err = json.Unmarshal(data, &info)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if info.DownloadURI == "" {
		return nil, fmt.Errorf("%w: missing download_uri for %s", ErrMalformedPayload, kind)
	}

	return &info, nil
}

// DownloadBulk opens the bulk file of the given kind. The caller needs
// to close the returned reader.
func (sc *Client) DownloadBulk(ctx context.Context, kind string) (io.ReadCloser, *BulkData, error) {
	info, err := sc.BulkDataInfo(ctx, kind)
	if err != nil {
		return nil, nil, err
	}

	resp, err := sc.get(ctx, info.DownloadURI)
	if err != nil {
		return nil, nil, err
	}

	return resp.Body, info, nil
}

// FetchCatalog downloads and decodes the whole bulk file of the given kind.
func (sc *Client) FetchCatalog(ctx context.Context, kind string) ([]Card, error) {
	reader, _, err := sc.DownloadBulk(ctx, kind)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return LoadCards(reader)
}
