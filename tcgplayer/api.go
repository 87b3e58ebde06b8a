package tcgplayer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	defaultConcurrency = 8
	defaultAPIRetry    = 5

	// Upstream rejects requests with more ids than this
	MaxIdsInRequest = 250

	DefaultBaseURL = "https://api.tcgplayer.com/"

	tcgApiVersion    = "v1.39.0"
	tcgApiProductURL = tcgApiVersion + "/pricing/product/"
)

type TCGClient struct {
	BaseURL string

	session *Session
	client  *retryablehttp.Client
}

func NewTCGClient(session *Session) *TCGClient {
	tcg := TCGClient{}
	tcg.BaseURL = DefaultBaseURL
	tcg.session = session
	tcg.client = retryablehttp.NewClient()
	tcg.client.Logger = nil
	tcg.client.RetryMax = defaultAPIRetry
	tcg.client.HTTPClient.Transport = &authTransport{
		Parent:  tcg.client.HTTPClient.Transport,
		Session: session,

		// Set a relatively high rate to prevent unexpected limits later
		Limiter: rate.NewLimiter(40, 20),
	}
	return &tcg
}

type authTransport struct {
	Parent  http.RoundTripper
	Session *Session
	Limiter *rate.Limiter
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := t.Limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}

	token, err := t.Session.Token(req.Context())
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.AccessToken))
	return t.Parent.RoundTrip(req)
}

type TCGPrice struct {
	ProductId      int     `json:"productId"`
	LowPrice       float64 `json:"lowPrice"`
	MidPrice       float64 `json:"midPrice"`
	HighPrice      float64 `json:"highPrice"`
	MarketPrice    float64 `json:"marketPrice"`
	DirectLowPrice float64 `json:"directLowPrice"`
	SubTypeName    string  `json:"subTypeName"`
}

// PricesForIds retrieves the prices of up to MaxIdsInRequest products,
// one entry per product and sub type.
func (tcg *TCGClient) PricesForIds(ctx context.Context, productIds []string) ([]TCGPrice, error) {
	if len(productIds) == 0 {
		return nil, nil
	}
	if len(productIds) > MaxIdsInRequest {
		return nil, fmt.Errorf("too many ids in request (%d > %d)", len(productIds), MaxIdsInRequest)
	}

	// Credential problems are reported before any request is retried
	_, err := tcg.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	link := tcg.BaseURL + tcgApiProductURL + strings.Join(productIds, ",")
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	resp, err := tcg.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		tcg.session.Invalidate()
		return nil, fmt.Errorf("%w: status %d", ErrTokenExpired, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var response struct {
		Success bool       `json:"success"`
		Errors  []string   `json:"errors"`
		Results []TCGPrice `json:"results"`
	}
	err = json.Unmarshal(data, &response)
	if err != nil {
		if strings.Contains(string(data), "<head><title>403 Forbidden</title></head>") {
			tcg.session.Invalidate()
			return nil, fmt.Errorf("%w: 403 Forbidden", ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !response.Success {
		// Returned when none of the ids are known
		if resp.StatusCode == http.StatusNotFound && len(response.Results) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, strings.Join(response.Errors, "|"))
	}

	return response.Results, nil
}
