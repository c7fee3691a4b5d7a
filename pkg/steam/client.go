package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/metrics"
)

const (
	defaultAPIBaseURL       = "https://api.steampowered.com"
	defaultStoreBaseURL     = "https://store.steampowered.com"
	defaultCommunityBaseURL = "https://steamcommunity.com"
	defaultLanguage         = "english"

	mediaBaseURL = "https://media.steampowered.com/steamcommunity/public/images/apps"

	responseBodyReadLimit int64 = 1024
)

// Client wraps the Steam Web API, store API, and OpenID provider endpoints.
// Each call is a single attempt: no retries, no caching, no deduplication.
type Client struct {
	httpClient       *http.Client
	apiBaseURL       string
	storeBaseURL     string
	communityBaseURL string
	apiKey           string
	language         string
	metrics          *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIBaseURL overrides the Web API base URL.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.apiBaseURL = trimmed
		}
	}
}

// WithStoreBaseURL overrides the store API base URL.
func WithStoreBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.storeBaseURL = trimmed
		}
	}
}

// WithCommunityBaseURL overrides the community (OpenID provider) base URL.
func WithCommunityBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.communityBaseURL = trimmed
		}
	}
}

// WithLanguage overrides the localization language for schema and store calls.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(language); trimmed != "" {
			c.language = trimmed
		}
	}
}

// WithMetrics attaches upstream call metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a Steam client. An empty API key is allowed: calls that
// need one fail with a configuration error before any network I/O.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:           strings.TrimSpace(apiKey),
		apiBaseURL:       defaultAPIBaseURL,
		storeBaseURL:     defaultStoreBaseURL,
		communityBaseURL: defaultCommunityBaseURL,
		language:         defaultLanguage,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client
}

// OpenIDEndpoint returns the provider login endpoint used for both the
// browser redirect and the check_authentication verification call.
func (c *Client) OpenIDEndpoint() string {
	return strings.TrimRight(c.communityBaseURL, "/") + "/openid/login"
}

func (c *Client) requireKey() error {
	if c.apiKey == "" {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "steam api key is not configured")
	}
	return nil
}

// PlayerSummary is the public profile data for one account.
type PlayerSummary struct {
	SteamID      string
	PersonaName  string
	Avatar       string
	AvatarMedium string
	AvatarFull   string
	ProfileURL   string
}

// GetPlayerSummary fetches the public profile for one steam id.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(steamID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "steam id is required")
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("steamids", steamID)

	var apiResp struct {
		Response struct {
			Players []struct {
				SteamID      string `json:"steamid"`
				PersonaName  string `json:"personaname"`
				Avatar       string `json:"avatar"`
				AvatarMedium string `json:"avatarmedium"`
				AvatarFull   string `json:"avatarfull"`
				ProfileURL   string `json:"profileurl"`
			} `json:"players"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "player_summary", c.apiURL("/ISteamUser/GetPlayerSummaries/v0002/", query), &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Response.Players) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "player not found")
	}

	p := apiResp.Response.Players[0]
	return &PlayerSummary{
		SteamID:      p.SteamID,
		PersonaName:  p.PersonaName,
		Avatar:       p.Avatar,
		AvatarMedium: p.AvatarMedium,
		AvatarFull:   p.AvatarFull,
		ProfileURL:   p.ProfileURL,
	}, nil
}

// OwnedGame is one entry of a player's library.
type OwnedGame struct {
	AppID                    int
	Name                     string
	PlaytimeForever          int
	ImgIconURL               string
	ImgLogoURL               string
	HasCommunityVisibleStats bool
}

// GetOwnedGames lists the player's library including played free games.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(steamID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "steam id is required")
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("steamid", steamID)
	query.Set("format", "json")
	query.Set("include_appinfo", "true")
	query.Set("include_played_free_games", "true")

	var apiResp struct {
		Response struct {
			GameCount int `json:"game_count"`
			Games     []struct {
				AppID                    int    `json:"appid"`
				Name                     string `json:"name"`
				PlaytimeForever          int    `json:"playtime_forever"`
				ImgIconURL               string `json:"img_icon_url"`
				ImgLogoURL               string `json:"img_logo_url"`
				HasCommunityVisibleStats bool   `json:"has_community_visible_stats"`
			} `json:"games"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "owned_games", c.apiURL("/IPlayerService/GetOwnedGames/v0001/", query), &apiResp); err != nil {
		return nil, err
	}

	games := make([]OwnedGame, 0, len(apiResp.Response.Games))
	for _, g := range apiResp.Response.Games {
		games = append(games, OwnedGame{
			AppID:                    g.AppID,
			Name:                     g.Name,
			PlaytimeForever:          g.PlaytimeForever,
			ImgIconURL:               mediaImageURL(g.AppID, g.ImgIconURL),
			ImgLogoURL:               mediaImageURL(g.AppID, g.ImgLogoURL),
			HasCommunityVisibleStats: g.HasCommunityVisibleStats,
		})
	}
	return games, nil
}

// GetSteamLevel fetches the account's experience level.
func (c *Client) GetSteamLevel(ctx context.Context, steamID string) (int, error) {
	if err := c.requireKey(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(steamID) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "steam id is required")
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("steamid", steamID)

	var apiResp struct {
		Response struct {
			PlayerLevel int `json:"player_level"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "steam_level", c.apiURL("/IPlayerService/GetSteamLevel/v1/", query), &apiResp); err != nil {
		return 0, err
	}
	return apiResp.Response.PlayerLevel, nil
}

// SchemaAchievement is one achievement definition from a game's stats schema.
type SchemaAchievement struct {
	APIName     string
	DisplayName string
	Description string
	Icon        string
	IconGray    string
	Hidden      bool
}

// GetSchemaForGame returns the game's achievement definitions. A game without
// community stats yields an empty slice, not an error.
func (c *Client) GetSchemaForGame(ctx context.Context, appID int) ([]SchemaAchievement, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("appid", strconv.Itoa(appID))
	query.Set("l", c.language)

	var apiResp struct {
		Game struct {
			AvailableGameStats *struct {
				Achievements []struct {
					Name        string `json:"name"`
					DisplayName string `json:"displayName"`
					Description string `json:"description"`
					Icon        string `json:"icon"`
					IconGray    string `json:"icongray"`
					Hidden      int    `json:"hidden"`
				} `json:"achievements"`
			} `json:"availableGameStats"`
		} `json:"game"`
	}
	if err := c.getJSON(ctx, "game_schema", c.apiURL("/ISteamUserStats/GetSchemaForGame/v2/", query), &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Game.AvailableGameStats == nil {
		return []SchemaAchievement{}, nil
	}

	achievements := make([]SchemaAchievement, 0, len(apiResp.Game.AvailableGameStats.Achievements))
	for _, a := range apiResp.Game.AvailableGameStats.Achievements {
		achievements = append(achievements, SchemaAchievement{
			APIName:     a.Name,
			DisplayName: a.DisplayName,
			Description: a.Description,
			Icon:        a.Icon,
			IconGray:    a.IconGray,
			Hidden:      a.Hidden == 1,
		})
	}
	return achievements, nil
}

// GetGlobalAchievementPercentages maps achievement api-name to the global
// unlock percentage. The endpoint is keyless.
func (c *Client) GetGlobalAchievementPercentages(ctx context.Context, appID int) (map[string]float64, error) {
	query := url.Values{}
	query.Set("gameid", strconv.Itoa(appID))
	query.Set("format", "json")

	var apiResp struct {
		AchievementPercentages struct {
			Achievements []struct {
				Name    string  `json:"name"`
				Percent float64 `json:"percent"`
			} `json:"achievements"`
		} `json:"achievementpercentages"`
	}
	if err := c.getJSON(ctx, "global_percentages", c.apiURL("/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v0002/", query), &apiResp); err != nil {
		return nil, err
	}

	percentages := make(map[string]float64, len(apiResp.AchievementPercentages.Achievements))
	for _, a := range apiResp.AchievementPercentages.Achievements {
		percentages[a.Name] = a.Percent
	}
	return percentages, nil
}

// PlayerAchievement is the player's completion record for one achievement.
type PlayerAchievement struct {
	APIName    string
	Achieved   bool
	UnlockTime *time.Time
}

// GetPlayerAchievements fetches the player's completion records for one game.
// A private profile surfaces as a typed not-found error.
func (c *Client) GetPlayerAchievements(ctx context.Context, steamID string, appID int) ([]PlayerAchievement, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(steamID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "steam id is required")
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("steamid", steamID)
	query.Set("appid", strconv.Itoa(appID))
	query.Set("l", c.language)

	var apiResp struct {
		PlayerStats struct {
			Success      bool   `json:"success"`
			Error        string `json:"error"`
			Achievements []struct {
				APIName    string `json:"apiname"`
				Achieved   int    `json:"achieved"`
				UnlockTime int64  `json:"unlocktime"`
			} `json:"achievements"`
		} `json:"playerstats"`
	}
	if err := c.getJSON(ctx, "player_achievements", c.apiURL("/ISteamUserStats/GetPlayerAchievements/v0001/", query), &apiResp); err != nil {
		return nil, err
	}

	if apiResp.PlayerStats.Error != "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, apiResp.PlayerStats.Error)
	}

	achievements := make([]PlayerAchievement, 0, len(apiResp.PlayerStats.Achievements))
	for _, a := range apiResp.PlayerStats.Achievements {
		entry := PlayerAchievement{
			APIName:  a.APIName,
			Achieved: a.Achieved == 1,
		}
		if a.UnlockTime > 0 {
			unlocked := time.Unix(a.UnlockTime, 0).UTC()
			entry.UnlockTime = &unlocked
		}
		achievements = append(achievements, entry)
	}
	return achievements, nil
}

// AppDetails is the store listing for one game.
type AppDetails struct {
	AppID       int
	Name        string
	Description string
	HeaderImage string
	Screenshots []string
	Developers  []string
	Publishers  []string
	ReleaseDate string
	Genres      []string
	Price       string
}

// GetAppDetails fetches the store listing. The store reports unknown or
// region-locked ids with success=false, which maps to not-found.
func (c *Client) GetAppDetails(ctx context.Context, appID int) (*AppDetails, error) {
	query := url.Values{}
	query.Set("appids", strconv.Itoa(appID))
	query.Set("l", c.language)

	endpoint := strings.TrimRight(c.storeBaseURL, "/") + "/api/appdetails?" + query.Encode()

	var apiResp map[string]struct {
		Success bool `json:"success"`
		Data    struct {
			Name          string `json:"name"`
			AboutTheGame  string `json:"about_the_game"`
			HeaderImage   string `json:"header_image"`
			Screenshots   []struct {
				PathFull string `json:"path_full"`
			} `json:"screenshots"`
			Developers  []string `json:"developers"`
			Publishers  []string `json:"publishers"`
			ReleaseDate struct {
				Date string `json:"date"`
			} `json:"release_date"`
			Genres []struct {
				Description string `json:"description"`
			} `json:"genres"`
			PriceOverview *struct {
				FinalFormatted string `json:"final_formatted"`
			} `json:"price_overview"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "app_details", endpoint, &apiResp); err != nil {
		return nil, err
	}

	entry, ok := apiResp[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found or not accessible")
	}

	details := &AppDetails{
		AppID:       appID,
		Name:        entry.Data.Name,
		Description: entry.Data.AboutTheGame,
		HeaderImage: entry.Data.HeaderImage,
		Screenshots: make([]string, 0, len(entry.Data.Screenshots)),
		Developers:  entry.Data.Developers,
		Publishers:  entry.Data.Publishers,
		ReleaseDate: entry.Data.ReleaseDate.Date,
		Genres:      make([]string, 0, len(entry.Data.Genres)),
	}
	for _, s := range entry.Data.Screenshots {
		details.Screenshots = append(details.Screenshots, s.PathFull)
	}
	for _, g := range entry.Data.Genres {
		details.Genres = append(details.Genres, g.Description)
	}
	if entry.Data.PriceOverview != nil {
		details.Price = entry.Data.PriceOverview.FinalFormatted
	}
	if details.ReleaseDate == "" {
		details.ReleaseDate = "N/A"
	}
	return details, nil
}

// AppListEntry is one app in the full catalog listing.
type AppListEntry struct {
	AppID int
	Name  string
}

// GetAppList fetches the full app catalog used as the search source.
func (c *Client) GetAppList(ctx context.Context) ([]AppListEntry, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("key", c.apiKey)

	var apiResp struct {
		AppList struct {
			Apps []struct {
				AppID int    `json:"appid"`
				Name  string `json:"name"`
			} `json:"apps"`
		} `json:"applist"`
	}
	if err := c.getJSON(ctx, "app_list", c.apiURL("/ISteamApps/GetAppList/v2/", query), &apiResp); err != nil {
		return nil, err
	}

	apps := make([]AppListEntry, 0, len(apiResp.AppList.Apps))
	for _, a := range apiResp.AppList.Apps {
		apps = append(apps, AppListEntry{AppID: a.AppID, Name: a.Name})
	}
	return apps, nil
}

// ServerInfo reports the vendor API's own clock, used as a reachability probe.
type ServerInfo struct {
	ServerTime       time.Time
	ServerTimeString string
}

// GetServerInfo probes the keyless Web API utility endpoint.
func (c *Client) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	var apiResp struct {
		ServerTime       int64  `json:"servertime"`
		ServerTimeString string `json:"servertimestring"`
	}
	if err := c.getJSON(ctx, "server_info", c.apiURL("/ISteamWebAPIUtil/GetServerInfo/v1/", nil), &apiResp); err != nil {
		return nil, err
	}
	return &ServerInfo{
		ServerTime:       time.Unix(apiResp.ServerTime, 0).UTC(),
		ServerTimeString: apiResp.ServerTimeString,
	}, nil
}

// VerifyOpenID re-poses a callback assertion to the provider with
// mode=check_authentication. Only the provider can confirm a signature it
// issued, so a positive answer defeats replay and tampering.
func (c *Client) VerifyOpenID(ctx context.Context, params url.Values) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.OpenIDEndpoint(), strings.NewReader(params.Encode()))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build openid verification request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("openid_verify", start, false)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute openid verification request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.observe("openid_verify", start, false)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d", resp.StatusCode), "openid verification request failed")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		c.observe("openid_verify", start, false)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read openid verification response")
	}

	c.observe("openid_verify", start, true)
	return strings.Contains(string(body), "is_valid:true"), nil
}

func (c *Client) apiURL(path string, query url.Values) string {
	endpoint := strings.TrimRight(c.apiBaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+endpoint+" request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, start, false)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+endpoint+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.observe(endpoint, start, false)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), endpoint+" request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.observe(endpoint, start, false)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+endpoint+" response")
	}

	c.observe(endpoint, start, true)
	return nil
}

func (c *Client) observe(endpoint string, start time.Time, success bool) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveDuration(endpoint, time.Since(start))
	if success {
		c.metrics.IncSuccess(endpoint)
	} else {
		c.metrics.IncFailure(endpoint)
	}
}

func mediaImageURL(appID int, hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("%s/%d/%s.jpg", mediaBaseURL, appID, hash)
}
