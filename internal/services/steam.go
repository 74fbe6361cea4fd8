package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultSteamAPIBase = "https://api.steampowered.com"

// OwnedGame is one entry of a Steam owned-games listing.
type OwnedGame struct {
	AppID           uint64 `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
}

// SteamCatalog fetches a user's owned games from the external catalog.
type SteamCatalog interface {
	OwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error)
}

// SteamClient calls the Steam Web API.
type SteamClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSteamClient creates a Steam Web API client with a request timeout.
func NewSteamClient(apiKey string, timeout time.Duration) *SteamClient {
	return &SteamClient{
		apiKey:  apiKey,
		baseURL: defaultSteamAPIBase,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewSteamClientWithBaseURL creates a client against a non-default API
// host (used for testing).
func NewSteamClientWithBaseURL(apiKey, baseURL string, timeout time.Duration) *SteamClient {
	c := NewSteamClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

// OwnedGames fetches the owned-games list via
// IPlayerService/GetOwnedGames/v1, including app info and played free
// games, matching what the importer reconciles against.
func (s *SteamClient) OwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("steamid", steamID)
	query.Set("include_appinfo", "true")
	query.Set("include_played_free_games", "true")
	query.Set("format", "json")

	endpoint := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?%s", s.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build owned games request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("owned games request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("owned games request returned status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			GameCount int         `json:"game_count"`
			Games     []OwnedGame `json:"games"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode owned games response: %w", err)
	}

	return payload.Response.Games, nil
}
