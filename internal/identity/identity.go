// Package identity obtains server-issued credentials from a remote
// identity endpoint, as an alternative to the interactive login flow.
package identity

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stdbtools/spacetime-token/internal/address"
)

// Timeout bounds the identity call; past it the request fails rather
// than hangs. There are no retries.
const Timeout = 10 * time.Second

type identityResponse struct {
	Token string `json:"token"`
}

// Fetch requests a server-issued credential from the identity endpoint
// of the given address. Non-2xx statuses, malformed bodies, and empty
// tokens are all errors.
func Fetch(addr string) (string, error) {
	url := address.IdentityBase(addr) + "/v1/identity"

	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("building identity request for %s: %w", url, err)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("identity request to %s failed with status %s", url, resp.Status)
	}

	var ident identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return "", fmt.Errorf("parsing identity response from %s: %w", url, err)
	}
	if strings.TrimSpace(ident.Token) == "" {
		return "", fmt.Errorf("identity response from %s did not include a token", url)
	}
	return ident.Token, nil
}
