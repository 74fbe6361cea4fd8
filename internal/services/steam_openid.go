package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const steamOpenIDEndpoint = "https://steamcommunity.com/openid/login"

// ErrInvalidAssertion is returned when Steam rejects an OpenID assertion
// or the claimed identity is not a Steam profile URL.
var ErrInvalidAssertion = errors.New("invalid openid assertion")

var steamClaimedIDPattern = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/(\d+)$`)

// SteamOpenID implements the provider side of the Steam OpenID 2.0 login
// flow: building the checkid_setup redirect and verifying the returned
// assertion with check_authentication.
type SteamOpenID struct {
	endpoint   string
	httpClient *http.Client
}

// NewSteamOpenID creates a verifier with a request timeout.
func NewSteamOpenID(timeout time.Duration) *SteamOpenID {
	return &SteamOpenID{
		endpoint: steamOpenIDEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewSteamOpenIDWithEndpoint creates a verifier against a non-default
// provider endpoint (used for testing).
func NewSteamOpenIDWithEndpoint(endpoint string, timeout time.Duration) *SteamOpenID {
	o := NewSteamOpenID(timeout)
	o.endpoint = endpoint
	return o
}

// RedirectURL builds the provider URL that starts the login round trip.
// returnTo is where Steam sends the browser back; realm scopes the
// assertion to this deployment.
func (o *SteamOpenID) RedirectURL(returnTo, realm string) string {
	params := url.Values{}
	params.Set("openid.ns", "http://specs.openid.net/auth/2.0")
	params.Set("openid.mode", "checkid_setup")
	params.Set("openid.return_to", returnTo)
	params.Set("openid.realm", realm)
	params.Set("openid.identity", "http://specs.openid.net/auth/2.0/identifier_select")
	params.Set("openid.claimed_id", "http://specs.openid.net/auth/2.0/identifier_select")
	return o.endpoint + "?" + params.Encode()
}

// VerifyAssertion replays the assertion parameters to the provider in
// check_authentication mode and extracts the 64-bit Steam ID from the
// claimed identity. The assertion is only trusted if the provider answers
// is_valid:true.
func (o *SteamOpenID) VerifyAssertion(ctx context.Context, query url.Values) (string, error) {
	claimedID := query.Get("openid.claimed_id")
	match := steamClaimedIDPattern.FindStringSubmatch(claimedID)
	if match == nil {
		return "", ErrInvalidAssertion
	}
	steamID := match[1]

	params := url.Values{}
	for key, values := range query {
		if strings.HasPrefix(key, "openid.") {
			params[key] = values
		}
	}
	params.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint,
		strings.NewReader(params.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read verification response: %w", err)
	}

	if !strings.Contains(string(body), "is_valid:true") {
		return "", ErrInvalidAssertion
	}
	return steamID, nil
}
