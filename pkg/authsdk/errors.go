package authsdk

import (
	"encoding/json"
	"net/http"

	"github.com/codingbarn/barnyard/pkg/httpx"
)

// parseErrorResponse turns a non-2xx HTTP response into a typed error.
// Bodies follow the shared {status,message} envelope; anything else falls
// back to a generic error built from the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var e httpx.Error
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		if e.Status == 0 {
			e.Status = resp.StatusCode
		}
		return &e
	}

	return httpx.NewError(resp.StatusCode, http.StatusText(resp.StatusCode))
}
