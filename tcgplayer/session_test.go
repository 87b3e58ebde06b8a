package tcgplayer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func tokenServer(t *testing.T, status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("FAIL: Unexpected method %s", r.Method)
		}
		err := r.ParseForm()
		if err != nil {
			t.Errorf("FAIL: Unexpected error: %s", err.Error())
		}
		if r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") != "public" ||
			r.PostForm.Get("client_secret") != "private" {
			t.Errorf("FAIL: Unexpected form %v", r.PostForm)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestAcquireToken(t *testing.T) {
	expires := time.Now().Add(14 * 24 * time.Hour).UTC().Truncate(time.Second)
	srv := tokenServer(t, http.StatusOK, fmt.Sprintf(`{"access_token":"abc","token_type":"bearer","expires_in":1209599,"userName":"public",".issued":"%s",".expires":"%s"}`,
		time.Now().UTC().Format(http.TimeFormat), expires.Format(http.TimeFormat)))
	defer srv.Close()

	session := NewSession("public", "private")
	session.TokenURL = srv.URL

	token, err := session.AcquireToken(context.Background())
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if token.AccessToken != "abc" || !token.Expires.Equal(expires) {
		t.Errorf("FAIL: Unexpected token %+v", token)
		return
	}
	if !token.Valid() {
		t.Errorf("FAIL: token should be valid")
		return
	}

	t.Log("PASS: AcquireToken")
}

func TestAcquireTokenRelativeExpiration(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, `{"access_token":"abc","expires_in":3600}`)
	defer srv.Close()

	session := NewSession("public", "private")
	session.TokenURL = srv.URL

	token, err := session.AcquireToken(context.Background())
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	delta := time.Until(token.Expires)
	if delta < 59*time.Minute || delta > time.Hour {
		t.Errorf("FAIL: Unexpected expiration %v", token.Expires)
		return
	}

	t.Log("PASS: relative expiration")
}

var TokenErrorTests = []struct {
	Desc   string
	Status int
	Body   string
	Err    error
}{
	{"rejected credentials", http.StatusBadRequest, `{"error":"invalid_client"}`, ErrRequestFailed},
	{"server down", http.StatusServiceUnavailable, ``, ErrUnreachable},
	{"not json", http.StatusOK, `<html></html>`, ErrMalformedResponse},
	{"missing token", http.StatusOK, `{"expires_in":3600}`, ErrMalformedResponse},
	{"missing expiration", http.StatusOK, `{"access_token":"abc"}`, ErrMalformedResponse},
}

func TestAcquireTokenErrors(t *testing.T) {
	for _, tt := range TokenErrorTests {
		test := tt
		t.Run(test.Desc, func(t *testing.T) {
			t.Parallel()
			srv := tokenServer(t, test.Status, test.Body)
			defer srv.Close()

			session := NewSession("public", "private")
			session.TokenURL = srv.URL

			_, err := session.AcquireToken(context.Background())
			if !errors.Is(err, test.Err) {
				t.Errorf("FAIL: Expected %v, got %v", test.Err, err)
				return
			}
			t.Log("PASS:", test.Desc)
		})
	}
}

func TestAcquireTokenMissingCredentials(t *testing.T) {
	session := NewSession("public", "")
	_, err := session.Token(context.Background())
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("FAIL: Expected missing credentials, got %v", err)
		return
	}
	t.Log("PASS: missing credentials")
}

func TestAcquireTokenUnreachable(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, ``)
	srv.Close()

	session := NewSession("public", "private")
	session.TokenURL = srv.URL

	_, err := session.AcquireToken(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("FAIL: Expected unreachable, got %v", err)
		return
	}
	t.Log("PASS: unreachable")
}

func TestSessionToken(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":1209599}`, hits)
	}))
	defer srv.Close()

	session := NewSession("public", "private")
	session.TokenURL = srv.URL

	for i := 0; i < 3; i++ {
		token, err := session.Token(context.Background())
		if err != nil {
			t.Errorf("FAIL: Unexpected error: %s", err.Error())
			return
		}
		if token.AccessToken != "token-1" {
			t.Errorf("FAIL: token was not reused: %s", token.AccessToken)
			return
		}
	}

	session.Invalidate()
	token, err := session.Token(context.Background())
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if token.AccessToken != "token-2" {
		t.Errorf("FAIL: token was not renewed after invalidation: %s", token.AccessToken)
		return
	}

	// About to expire
	session.token.Expires = time.Now().Add(tokenExpiryMargin / 2)
	token, err = session.Token(context.Background())
	if err != nil {
		t.Errorf("FAIL: Unexpected error: %s", err.Error())
		return
	}
	if token.AccessToken != "token-3" {
		t.Errorf("FAIL: token was not renewed before expiration: %s", token.AccessToken)
		return
	}

	t.Log("PASS: Session token")
}
