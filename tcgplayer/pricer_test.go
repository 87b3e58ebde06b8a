package tcgplayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/mtgban/go-skynet/skynet"
)

type fakeReply struct {
	Status int
	Body   string
}

// fakeTCG serves tokens and prices, replying with the queued replies first
type fakeTCG struct {
	mtx      sync.Mutex
	tokens   int
	requests int
	replies  []fakeReply
}

func (fake *fakeTCG) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fake.mtx.Lock()
	defer fake.mtx.Unlock()

	if r.URL.Path == "/token" {
		fake.tokens++
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"bearer","expires_in":1209599}`, fake.tokens)
		return
	}

	prefix := "/" + tcgApiProductURL
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	fake.requests++

	if r.Header.Get("Authorization") != fmt.Sprintf("Bearer token-%d", fake.tokens) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if len(fake.replies) > 0 {
		reply := fake.replies[0]
		fake.replies = fake.replies[1:]
		w.WriteHeader(reply.Status)
		fmt.Fprint(w, reply.Body)
		return
	}

	var response struct {
		Success bool       `json:"success"`
		Errors  []string   `json:"errors"`
		Results []TCGPrice `json:"results"`
	}
	response.Success = true
	response.Errors = []string{}
	for _, id := range strings.Split(strings.TrimPrefix(r.URL.Path, prefix), ",") {
		productId, _ := strconv.Atoi(id)
		normal := TCGPrice{ProductId: productId, SubTypeName: skynet.SubTypeNormal}
		foil := TCGPrice{ProductId: productId, SubTypeName: skynet.SubTypeFoil}
		// Unpriced product
		if id != "999" {
			normal.LowPrice, normal.MarketPrice = 0.5, 1
			foil.LowPrice, foil.MarketPrice = 1.5, 2
		}
		response.Results = append(response.Results, normal, foil)
	}
	json.NewEncoder(w).Encode(&response)
}

func (fake *fakeTCG) counts() (int, int) {
	fake.mtx.Lock()
	defer fake.mtx.Unlock()
	return fake.tokens, fake.requests
}

func newTestPricer(srv *httptest.Server) *Pricer {
	session := NewSession("public", "private")
	session.TokenURL = srv.URL + "/token"

	tcg := NewPricer(session)
	tcg.client.BaseURL = srv.URL + "/"
	tcg.client.client.RetryMax = 0
	return tcg
}

func TestPricesForIds(t *testing.T) {
	fake := &fakeTCG{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tcg := newTestPricer(srv)
	results, err := tcg.client.PricesForIds(context.Background(), []string{"100", "2000"})
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if len(results) != 4 {
		t.Errorf("FAIL: Expected 4 results, got %d", len(results))
		return
	}
	if results[2].ProductId != 2000 || results[2].MarketPrice != 1 {
		t.Errorf("FAIL: Unexpected result %+v", results[2])
		return
	}

	_, err = tcg.client.PricesForIds(context.Background(), make([]string, MaxIdsInRequest+1))
	if err == nil {
		t.Errorf("FAIL: oversized request should fail")
		return
	}

	t.Log("PASS: PricesForIds")
}

var PriceErrorTests = []struct {
	Desc  string
	Reply fakeReply
	Err   error
}{
	{
		Desc:  "server error",
		Reply: fakeReply{Status: http.StatusInternalServerError},
		Err:   ErrUnreachable,
	},
	{
		Desc:  "unauthorized",
		Reply: fakeReply{Status: http.StatusUnauthorized},
		Err:   ErrTokenExpired,
	},
	{
		Desc:  "forbidden page",
		Reply: fakeReply{Status: http.StatusForbidden, Body: "<html><head><title>403 Forbidden</title></head></html>"},
		Err:   ErrTokenExpired,
	},
	{
		Desc:  "not json",
		Reply: fakeReply{Status: http.StatusOK, Body: "{\"success\": tru"},
		Err:   ErrMalformedResponse,
	},
	{
		Desc:  "api error",
		Reply: fakeReply{Status: http.StatusBadRequest, Body: `{"success":false,"errors":["Invalid productId"],"results":[]}`},
		Err:   ErrRequestFailed,
	},
}

func TestPricesForIdsErrors(t *testing.T) {
	for _, tt := range PriceErrorTests {
		test := tt
		t.Run(test.Desc, func(t *testing.T) {
			t.Parallel()
			fake := &fakeTCG{replies: []fakeReply{test.Reply}}
			srv := httptest.NewServer(fake)
			defer srv.Close()

			tcg := newTestPricer(srv)
			_, err := tcg.client.PricesForIds(context.Background(), []string{"100"})
			if !errors.Is(err, test.Err) {
				t.Errorf("FAIL: Expected %v, got %v", test.Err, err)
				return
			}
			t.Log("PASS:", test.Desc)
		})
	}
}

func TestPricesForIdsNotFound(t *testing.T) {
	fake := &fakeTCG{replies: []fakeReply{
		{Status: http.StatusNotFound, Body: `{"success":false,"errors":["No products were found."],"results":[]}`},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tcg := newTestPricer(srv)
	results, err := tcg.client.PricesForIds(context.Background(), []string{"1"})
	if err != nil || len(results) != 0 {
		t.Errorf("FAIL: Expected no results and no error, got %v %v", results, err)
		return
	}
	t.Log("PASS: not found")
}

func TestPricesForIdsMissingCredentials(t *testing.T) {
	fake := &fakeTCG{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tcg := NewPricer(NewSession("", ""))
	tcg.client.BaseURL = srv.URL + "/"

	_, err := tcg.client.PricesForIds(context.Background(), []string{"1"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("FAIL: Expected missing credentials, got %v", err)
		return
	}
	_, requests := fake.counts()
	if requests != 0 {
		t.Errorf("FAIL: no request should have been made")
		return
	}
	t.Log("PASS: missing credentials")
}

func TestBatchIds(t *testing.T) {
	ids := []string{"1", "2", "", "1", "3", "4", "5", "2"}
	batches := batchIds(ids, 2)
	expected := [][]string{{"1", "2"}, {"3", "4"}, {"5"}}
	if fmt.Sprint(batches) != fmt.Sprint(expected) {
		t.Errorf("FAIL: Expected %v, got %v", expected, batches)
		return
	}
	t.Log("PASS: batchIds")
}

func TestPrices(t *testing.T) {
	fake := &fakeTCG{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	var ids []string
	for i := 1; i <= 600; i++ {
		ids = append(ids, fmt.Sprint(i))
	}
	ids = append(ids, "1", "", "999")

	tcg := newTestPricer(srv)
	tcg.Affiliate = "partner"
	prices, err := tcg.Prices(context.Background(), ids)
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}

	tokens, requests := fake.counts()
	if tokens != 1 || requests != 3 {
		t.Errorf("FAIL: Expected 1 token and 3 requests, got %d and %d", tokens, requests)
		return
	}
	if len(prices) != 1200 {
		t.Errorf("FAIL: Expected 1200 quotes, got %d", len(prices))
		return
	}
	quote, found := prices[skynet.PriceKey("42", skynet.SubTypeFoil)]
	if !found || quote.MarketPrice != 2 || quote.LowPrice != 1.5 {
		t.Errorf("FAIL: Unexpected quote %+v", quote)
		return
	}
	if !strings.HasPrefix(quote.URL, "https://tcgplayer.pxf.io/c/partner/") {
		t.Errorf("FAIL: Unexpected url %s", quote.URL)
		return
	}
	_, found = prices[skynet.PriceKey("999", skynet.SubTypeNormal)]
	if found {
		t.Errorf("FAIL: empty quotes should be skipped")
		return
	}

	t.Log("PASS: Prices")
}

func TestPricesExpiredToken(t *testing.T) {
	fake := &fakeTCG{replies: []fakeReply{{Status: http.StatusUnauthorized}}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tcg := newTestPricer(srv)
	tcg.MaxConcurrency = 1
	prices, err := tcg.Prices(context.Background(), []string{"1", "2", "3"})
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if len(prices) != 6 {
		t.Errorf("FAIL: Expected 6 quotes, got %d", len(prices))
		return
	}
	tokens, _ := fake.counts()
	if tokens != 2 {
		t.Errorf("FAIL: Expected the token to be renewed, got %d tokens", tokens)
		return
	}

	t.Log("PASS: expired token")
}

func TestPricesFailure(t *testing.T) {
	fake := &fakeTCG{replies: []fakeReply{
		{Status: http.StatusBadGateway},
		{Status: http.StatusBadGateway},
		{Status: http.StatusBadGateway},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	var ids []string
	for i := 1; i <= 3*MaxIdsInRequest; i++ {
		ids = append(ids, fmt.Sprint(i))
	}

	tcg := newTestPricer(srv)
	_, err := tcg.Prices(context.Background(), ids)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("FAIL: Expected unreachable, got %v", err)
		return
	}

	t.Log("PASS: failure")
}

func TestPriceCatalog(t *testing.T) {
	fake := &fakeTCG{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	catalog := skynet.NewCatalog([]skynet.Printing{
		{SequenceId: 1, DisplayName: "Lightning Bolt (Magic 2010)", ProductId: "33000"},
		{SequenceId: 2, DisplayName: "Unpriced (Nowhere)", ProductId: "999"},
		{SequenceId: 3, DisplayName: "Without Id (Nowhere)"},
	})

	tcg := newTestPricer(srv)
	priced, prices, err := tcg.PriceCatalog(context.Background(), catalog)
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if len(prices) != 2 || len(priced) != 3 {
		t.Errorf("FAIL: Unexpected sizes %d %d", len(prices), len(priced))
		return
	}
	if priced[0].Normal == nil || priced[0].Normal.MarketPrice != 1 || priced[1].Normal != nil {
		t.Errorf("FAIL: Unexpected join %+v", priced)
		return
	}

	t.Log("PASS: PriceCatalog")
}

func TestProductURL(t *testing.T) {
	link := TCGPlayerProductURL(42, skynet.SubTypeFoil, "")
	if link != "https://www.tcgplayer.com/product/42?Language=English&Printing=Foil" {
		t.Errorf("FAIL: Unexpected link %s", link)
		return
	}
	link = TCGPlayerProductURL(42, "", "partner")
	if link != "https://tcgplayer.pxf.io/c/partner/1830156/21018?u=https%3A%2F%2Fwww.tcgplayer.com%2Fproduct%2F42%3FLanguage%3DEnglish" {
		t.Errorf("FAIL: Unexpected link %s", link)
		return
	}
	t.Log("PASS: product URL")
}

func TestPricesForbiddenToken(t *testing.T) {
	fake := &fakeTCG{replies: []fakeReply{
		{Status: http.StatusForbidden, Body: `{"success":false,"errors":["Access denied"],"results":[]}`},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tcg := newTestPricer(srv)
	_, err := tcg.client.PricesForIds(context.Background(), []string{"1"})
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("FAIL: Expected an expired token, got %v", err)
		return
	}

	fake.mtx.Lock()
	fake.replies = []fakeReply{
		{Status: http.StatusForbidden, Body: `{"success":false,"errors":["Access denied"],"results":[]}`},
	}
	fake.mtx.Unlock()

	tcg.MaxConcurrency = 1
	prices, err := tcg.Prices(context.Background(), []string{"1", "2"})
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if len(prices) != 4 {
		t.Errorf("FAIL: Expected 4 quotes, got %d", len(prices))
		return
	}
	tokens, requests := fake.counts()
	if tokens != 3 || requests != 3 {
		t.Errorf("FAIL: Expected 3 tokens and 3 requests, got %d and %d", tokens, requests)
		return
	}

	t.Log("PASS: forbidden token")
}
