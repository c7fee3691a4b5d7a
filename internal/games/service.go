package games

import (
	"context"
	"fmt"

	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/steam"
)

// Summary is the client-facing store listing for one game.
type Summary struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Screenshots []string `json:"screenshots"`
	Developers  []string `json:"developers"`
	Publishers  []string `json:"publishers"`
	ReleaseDate string   `json:"release_date"`
	Genres      []string `json:"genres"`
	Price       string   `json:"price,omitempty"`
}

// LibraryEntry is one owned game with playtime.
type LibraryEntry struct {
	AppID                    int    `json:"appId"`
	Name                     string `json:"name"`
	PlaytimeForever          int    `json:"playtimeForever"`
	ImgIconURL               string `json:"imgIconUrl"`
	ImgLogoURL               string `json:"imgLogoUrl"`
	HasCommunityVisibleStats bool   `json:"hasCommunityVisibleStats"`
}

// Service exposes the game-facing read operations.
type Service interface {
	Detail(ctx context.Context, appID int) (*Summary, error)
	Library(ctx context.Context, steamID string) ([]LibraryEntry, error)
	Search(ctx context.Context, query string, owned map[int]bool) ([]SearchResult, error)
}

type platformClient interface {
	GetAppDetails(ctx context.Context, appID int) (*steam.AppDetails, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
	GetAppList(ctx context.Context) ([]steam.AppListEntry, error)
}

type service struct {
	client platformClient
}

// NewService constructs the games service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client is required")
	}
	return &service{client: client}, nil
}

func (s *service) Detail(ctx context.Context, appID int) (*Summary, error) {
	details, err := s.client.GetAppDetails(ctx, appID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		ID:          details.AppID,
		Name:        details.Name,
		Description: details.Description,
		Image:       details.HeaderImage,
		Screenshots: details.Screenshots,
		Developers:  details.Developers,
		Publishers:  details.Publishers,
		ReleaseDate: details.ReleaseDate,
		Genres:      details.Genres,
		Price:       details.Price,
	}, nil
}

func (s *service) Library(ctx context.Context, steamID string) ([]LibraryEntry, error) {
	games, err := s.client.GetOwnedGames(ctx, steamID)
	if err != nil {
		return nil, err
	}
	entries := make([]LibraryEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, LibraryEntry{
			AppID:                    g.AppID,
			Name:                     g.Name,
			PlaytimeForever:          g.PlaytimeForever,
			ImgIconURL:               g.ImgIconURL,
			ImgLogoURL:               g.ImgLogoURL,
			HasCommunityVisibleStats: g.HasCommunityVisibleStats,
		})
	}
	return entries, nil
}

// Search short-circuits under-length queries before touching the catalog.
func (s *service) Search(ctx context.Context, query string, owned map[int]bool) ([]SearchResult, error) {
	if len(query) < MinQueryLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query must be at least 3 characters").
			WithDetails(map[string]any{"field": "query", "min": MinQueryLength})
	}
	catalog, err := s.client.GetAppList(ctx)
	if err != nil {
		return nil, err
	}
	return MarkOwned(FilterCatalog(catalog, query), owned), nil
}
