package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/codingbarn/barnyard/pkg/authsdk"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// ErrNoToken means no token has been requested yet in this session.
var ErrNoToken = errors.New("no token requested yet")

// Song mirrors the shed's playlist entry shape.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// TokenInfo is what the guest endpoints return after a token request, kept
// verbose on purpose so tokens can be inspected and replayed by hand.
type TokenInfo struct {
	Token     string   `json:"token"`
	Scopes    []string `json:"scopes"`
	ExpiresIn int      `json:"expiresIn"`
	Message   string   `json:"message"`
}

// GuestClient is the deliberately simple OAuth client the party-guest app
// demonstrates with: it holds exactly one token, requested explicitly, and
// replays it against the shed so scope enforcement can be observed.
type GuestClient struct {
	authClient   *authsdk.Client
	shedURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu           sync.Mutex
	currentToken string
}

func NewGuestClient(authClient *authsdk.Client, shedURL, clientID, clientSecret string) *GuestClient {
	return &GuestClient{
		authClient:   authClient,
		shedURL:      strings.TrimRight(shedURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: authsdk.DefaultAcquireTimeout},
	}
}

// RequestToken asks the auth server for a token with the given scopes and
// remembers it for subsequent calls.
func (c *GuestClient) RequestToken(ctx context.Context, scopes []string) (TokenInfo, error) {
	log := slogx.FromContext(ctx)
	log.Info("requesting token", "scopes", scopes)

	resp, err := c.authClient.RequestToken(ctx, authsdk.TokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Scopes:       scopes,
	})
	if err != nil {
		return TokenInfo{}, err
	}

	c.mu.Lock()
	c.currentToken = resp.AccessToken
	c.mu.Unlock()

	log.Info("token acquired", "scopes", resp.Scopes)

	return TokenInfo{
		Token:     resp.AccessToken,
		Scopes:    resp.Scopes,
		ExpiresIn: resp.ExpiresIn,
		Message:   "Token acquired! Use it in subsequent requests.",
	}, nil
}

// NowPlaying fetches the current song using the stored token.
func (c *GuestClient) NowPlaying(ctx context.Context) (Song, error) {
	var song Song
	err := c.call(ctx, http.MethodGet, "/music/nowplaying", nil, &song)
	return song, err
}

// PlaySong asks the shed to jump to the given song.
func (c *GuestClient) PlaySong(ctx context.Context, songID string) (Song, error) {
	body := map[string]string{"songId": songID}

	var song Song
	err := c.call(ctx, http.MethodPost, "/music/play", body, &song)
	return song, err
}

// DeleteEquipment tries to empty the shed. With guest scopes this should
// come back 403, which is the point of the demonstration.
func (c *GuestClient) DeleteEquipment(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.call(ctx, http.MethodDelete, "/music/equipment", nil, &result)
	return result, err
}

func (c *GuestClient) call(ctx context.Context, method, path string, body, out any) error {
	c.mu.Lock()
	token := c.currentToken
	c.mu.Unlock()

	if token == "" {
		return ErrNoToken
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.shedURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call shed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var wireErr httpx.Error
		if json.Unmarshal(raw, &wireErr) == nil && wireErr.Message != "" {
			if wireErr.Status == 0 {
				wireErr.Status = resp.StatusCode
			}
			return &wireErr
		}
		return httpx.NewError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return json.Unmarshal(raw, out)
}
