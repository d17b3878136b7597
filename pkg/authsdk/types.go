package authsdk

// TokenRequest is the JSON body of POST /oauth/token.
type TokenRequest struct {
	ClientID     string   `json:"clientId"`
	ClientSecret string   `json:"clientSecret"`
	Scopes       []string `json:"scopes"`
}

// TokenResponse is the success body of POST /oauth/token. Scopes echoes the
// approved set so the caller learns what was actually granted.
type TokenResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ExpiresIn   int      `json:"expiresIn"`
	Scopes      []string `json:"scopes"`
}

// HealthResponse is shared by the /livez and /readyz endpoints of every
// service in the barnyard.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Upstream string `json:"upstream,omitempty"`
}
