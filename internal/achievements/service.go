package achievements

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/steam"
)

// Service assembles merged achievement views for a game.
type Service interface {
	// ListForGame fetches the schema, global percentages, and (when a steam
	// id is supplied) the player's completion records, then merges them.
	ListForGame(ctx context.Context, appID int, steamID string) ([]Descriptor, error)
	// PlayerRecords exposes the raw per-player completion records.
	PlayerRecords(ctx context.Context, steamID string, appID int) ([]steam.PlayerAchievement, error)
}

type platformClient interface {
	GetSchemaForGame(ctx context.Context, appID int) ([]steam.SchemaAchievement, error)
	GetGlobalAchievementPercentages(ctx context.Context, appID int) (map[string]float64, error)
	GetPlayerAchievements(ctx context.Context, steamID string, appID int) ([]steam.PlayerAchievement, error)
}

type service struct {
	client platformClient
}

// NewService constructs the achievements service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client is required")
	}
	return &service{client: client}, nil
}

func (s *service) ListForGame(ctx context.Context, appID int, steamID string) ([]Descriptor, error) {
	var (
		wg sync.WaitGroup

		schema    []steam.SchemaAchievement
		schemaErr error

		percentages map[string]float64
		globalErr   error

		player    []steam.PlayerAchievement
		playerErr error
	)

	// The upstream calls are independent: each goroutine records its own
	// outcome and none cancels the others.
	wg.Add(2)
	go func() {
		defer wg.Done()
		schema, schemaErr = s.client.GetSchemaForGame(ctx, appID)
	}()
	go func() {
		defer wg.Done()
		percentages, globalErr = s.client.GetGlobalAchievementPercentages(ctx, appID)
	}()
	if steamID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			player, playerErr = s.client.GetPlayerAchievements(ctx, steamID, appID)
		}()
	}
	wg.Wait()

	if schemaErr != nil {
		return nil, schemaErr
	}
	if globalErr != nil {
		return nil, globalErr
	}
	if playerErr != nil {
		return nil, playerErr
	}

	return Merge(schema, percentages, player), nil
}

func (s *service) PlayerRecords(ctx context.Context, steamID string, appID int) ([]steam.PlayerAchievement, error) {
	if steamID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "steam id is required")
	}
	return s.client.GetPlayerAchievements(ctx, steamID, appID)
}
