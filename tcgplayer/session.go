package tcgplayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	DefaultTokenURL = "https://api.tcgplayer.com/token"

	// Tokens are renewed this long before they actually expire
	tokenExpiryMargin = time.Minute
)

var (
	ErrMissingCredentials = errors.New("missing public or private id")
	ErrTokenExpired       = errors.New("bearer token expired or rejected")
	ErrUnreachable        = errors.New("tcgplayer unreachable")
	ErrMalformedResponse  = errors.New("malformed tcgplayer response")
	ErrRequestFailed      = errors.New("tcgplayer request failed")
)

// Token is a bearer token together with the time it stops being accepted.
type Token struct {
	AccessToken string    `json:"access_token"`
	Expires     time.Time `json:"expires"`
}

// Valid reports whether the token can still be used for a while.
func (t Token) Valid() bool {
	return t.AccessToken != "" && time.Now().Add(tokenExpiryMargin).Before(t.Expires)
}

// Session holds the API key pair and the bearer token obtained with it.
// It is safe for concurrent use.
type Session struct {
	PublicId  string
	PrivateId string
	TokenURL  string

	client *http.Client

	mtx   sync.Mutex
	token Token
}

func NewSession(publicId, privateId string) *Session {
	return &Session{
		PublicId:  publicId,
		PrivateId: privateId,
		TokenURL:  DefaultTokenURL,
		client:    cleanhttp.DefaultPooledClient(),
	}
}

// AcquireToken exchanges the key pair for a new bearer token. The token
// is returned as is, without being stored in the session.
func (s *Session) AcquireToken(ctx context.Context) (Token, error) {
	if s.PublicId == "" || s.PrivateId == "" {
		return Token{}, ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("grant_type", "client_credentials")
	params.Set("client_id", s.PublicId)
	params.Set("client_secret", s.PrivateId)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TokenURL, strings.NewReader(params.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return Token{}, fmt.Errorf("%w: token status %d", ErrUnreachable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Token{}, fmt.Errorf("%w: token status %d: %s", ErrRequestFailed, resp.StatusCode, data)
	}

	var response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
		UserName    string `json:"userName"`
		Issued      string `json:".issued"`
		Expires     string `json:".expires"`
	}
	err = json.Unmarshal(data, &response)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if response.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: missing access token", ErrMalformedResponse)
	}

	token := Token{
		AccessToken: response.AccessToken,
	}

	// Prefer the absolute date, fall back to the relative one
	token.Expires, err = http.ParseTime(response.Expires)
	if err != nil {
		if response.ExpiresIn <= 0 {
			return Token{}, fmt.Errorf("%w: missing expiration", ErrMalformedResponse)
		}
		token.Expires = time.Now().Add(time.Duration(response.ExpiresIn) * time.Second)
	}

	return token, nil
}

// Token returns the current token, acquiring a new one if it is missing
// or about to expire.
func (s *Session) Token(ctx context.Context) (Token, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.token.Valid() {
		return s.token, nil
	}

	token, err := s.AcquireToken(ctx)
	if err != nil {
		return Token{}, err
	}
	s.token = token

	return token, nil
}

// Invalidate drops the current token, so that the next call to Token
// acquires a new one.
func (s *Session) Invalidate() {
	s.mtx.Lock()
	s.token = Token{}
	s.mtx.Unlock()
}
