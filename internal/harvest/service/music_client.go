package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/codingbarn/barnyard/pkg/authsdk"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// Song mirrors the shed's playlist entry shape.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// MusicClient calls the shed's protected endpoints on behalf of the public
// harvest endpoints. Tokens come from the shared TokenSource; a 401 from the
// shed invalidates the cached token and the call retries once with a fresh
// one.
type MusicClient struct {
	shedURL     string
	tokenSource *authsdk.TokenSource
	httpClient  *http.Client
}

func NewMusicClient(shedURL string, tokenSource *authsdk.TokenSource) *MusicClient {
	return &MusicClient{
		shedURL:     strings.TrimRight(shedURL, "/"),
		tokenSource: tokenSource,
		httpClient:  &http.Client{Timeout: authsdk.DefaultAcquireTimeout},
	}
}

// CurrentSong fetches the shed's now-playing song.
func (c *MusicClient) CurrentSong(ctx context.Context) (Song, error) {
	var song Song
	if err := c.get(ctx, "/music/nowplaying", &song); err != nil {
		return Song{}, err
	}
	return song, nil
}

func (c *MusicClient) get(ctx context.Context, path string, out any) error {
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return fmt.Errorf("acquire token: %w", err)
	}

	status, err := c.doGet(ctx, path, token, out)
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return nil
	}

	// The shed rejected the token even though the cache thought it fresh.
	// Evict it and retry once with a newly acquired one.
	slogx.FromContext(ctx).Warn("shed rejected cached token, re-acquiring", "path", path)
	c.tokenSource.Invalidate(token)

	token, err = c.tokenSource.Token(ctx)
	if err != nil {
		return fmt.Errorf("re-acquire token: %w", err)
	}

	status, err = c.doGet(ctx, path, token, out)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return httpx.NewError(http.StatusUnauthorized, "Invalid token")
	}
	return nil
}

// doGet performs one authenticated GET. A 401 is reported through the status
// return so the caller can decide to retry; other non-200s become errors.
func (c *MusicClient) doGet(ctx context.Context, path, token string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.shedURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call shed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var wireErr httpx.Error
		if json.Unmarshal(body, &wireErr) == nil && wireErr.Message != "" {
			if wireErr.Status == 0 {
				wireErr.Status = resp.StatusCode
			}
			return resp.StatusCode, &wireErr
		}
		return resp.StatusCode, httpx.NewError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode shed response: %w", err)
	}
	return resp.StatusCode, nil
}
