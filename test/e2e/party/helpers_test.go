package party_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	authhttp "github.com/codingbarn/barnyard/internal/auth/http"
	authservice "github.com/codingbarn/barnyard/internal/auth/service"
	"github.com/codingbarn/barnyard/internal/auth/store/drivers/memory"
	shedhttp "github.com/codingbarn/barnyard/internal/shed/http"
	shedservice "github.com/codingbarn/barnyard/internal/shed/service"
	"github.com/codingbarn/barnyard/pkg/authsdk"
	"github.com/codingbarn/barnyard/pkg/jwtx"
)

// The issuer and the shed must agree on this key.
var sharedSigningKey = []byte("this-is-a-very-long-secret-key-for-jwt-signing-at-least-256-bits-long")

// partyFixture is a full in-process deployment: auth server and shed
// resource server talking over real HTTP.
type partyFixture struct {
	authURL string
	shedURL string
	signer  *jwtx.HS256
	sdk     *authsdk.Client
}

func newPartyFixture(t *testing.T) *partyFixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	signer, err := jwtx.NewHS256(sharedSigningKey)
	require.NoError(t, err)

	st := memory.NewStore()
	clients := &authservice.ClientService{Store: st}
	require.NoError(t, clients.Seed(context.Background(), authservice.DefaultSeedClients()))

	authRouter := authhttp.NewRouter("e2e", st, logger)
	authRouter.TokenService = &authservice.TokenService{Signer: signer, Store: st}
	authRouter.ClientService = clients
	authRouter.ApplyRoutes()

	authSrv := httptest.NewServer(authRouter)
	t.Cleanup(authSrv.Close)

	shedRouter := shedhttp.NewRouter(signer, "e2e", logger)
	shedRouter.MusicService = shedservice.NewMusicService()
	shedRouter.EquipmentService = shedservice.NewEquipmentService()
	shedRouter.ApplyRoutes()

	shedSrv := httptest.NewServer(shedRouter)
	t.Cleanup(shedSrv.Close)

	return &partyFixture{
		authURL: authSrv.URL,
		shedURL: shedSrv.URL,
		signer:  signer,
		sdk:     authsdk.NewClient(authSrv.URL),
	}
}

// acquireToken requests a token and fails the test on any error.
func (f *partyFixture) acquireToken(t *testing.T, clientID, secret string, scopes []string) *authsdk.TokenResponse {
	t.Helper()

	resp, err := f.sdk.RequestToken(context.Background(), authsdk.TokenRequest{
		ClientID:     clientID,
		ClientSecret: secret,
		Scopes:       scopes,
	})
	require.NoError(t, err)
	return resp
}

// callShed performs an authenticated request against the shed and returns
// the status code and raw body.
func (f *partyFixture) callShed(t *testing.T, method, path, token string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, f.shedURL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}
