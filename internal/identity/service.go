package identity

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/trophyroom/backend/pkg/config"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/session"
	"github.com/trophyroom/backend/pkg/steam"
)

// ErrorReason is the machine-readable failure indicator appended to the
// login redirect. The browser never sees a raw error from the callback.
type ErrorReason string

const (
	ReasonCancelled          ErrorReason = "cancelled"
	ReasonInvalidClaim       ErrorReason = "invalid_claim"
	ReasonVerificationFailed ErrorReason = "verification_failed"
	ReasonProfileUnavailable ErrorReason = "profile_unavailable"
)

// Service drives the sign-in handshake: provider redirect, assertion
// verification, and assembly of the session record.
type Service interface {
	LoginURL() (string, error)
	HandleCallback(ctx context.Context, query url.Values) (*session.Record, ErrorReason, error)
}

type platformClient interface {
	OpenIDEndpoint() string
	VerifyOpenID(ctx context.Context, params url.Values) (bool, error)
	GetPlayerSummary(ctx context.Context, steamID string) (*steam.PlayerSummary, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
	GetSteamLevel(ctx context.Context, steamID string) (int, error)
}

type service struct {
	client platformClient
	app    config.AppConfig
	logg   *logger.Logger
}

// ServiceParams bundles the dependencies required to build the identity service.
type ServiceParams struct {
	Client    platformClient
	AppConfig config.AppConfig
	Logger    *logger.Logger
}

// NewService constructs the identity service.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("platform client is required")
	}
	return &service{
		client: params.Client,
		app:    params.AppConfig,
		logg:   params.Logger,
	}, nil
}

func (s *service) LoginURL() (string, error) {
	realm, err := s.app.Origin()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeConfiguration, err, "resolve app origin")
	}
	return LoginRedirectURL(s.client.OpenIDEndpoint(), realm), nil
}

// HandleCallback runs the Verify state of the handshake. A non-empty
// ErrorReason means the attempt ended in a terminal failure the browser
// should see as a login redirect; err carries the server-side cause when one
// exists.
func (s *service) HandleCallback(ctx context.Context, query url.Values) (*session.Record, ErrorReason, error) {
	if query.Get("openid.mode") == ModeCancel {
		return nil, ReasonCancelled, nil
	}

	steamID, err := ExtractSteamID(query.Get("openid.claimed_id"))
	if err != nil {
		return nil, ReasonInvalidClaim, err
	}

	valid, err := s.client.VerifyOpenID(ctx, VerificationParams(query))
	if err != nil {
		return nil, ReasonVerificationFailed, err
	}
	if !valid {
		return nil, ReasonVerificationFailed, pkgerrors.New(pkgerrors.CodeUnauthorized, "provider rejected the assertion")
	}

	record, err := s.assembleRecord(ctx, steamID)
	if err != nil {
		return nil, ReasonProfileUnavailable, err
	}
	return record, "", nil
}

// assembleRecord issues the three profile calls concurrently and handles
// each outcome independently. Only the player summary is mandatory; the
// other two degrade to zero values.
func (s *service) assembleRecord(ctx context.Context, steamID string) (*session.Record, error) {
	var (
		wg         sync.WaitGroup
		summary    *steam.PlayerSummary
		summaryErr error
		gameCount  int
		level      int
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		summary, summaryErr = s.client.GetPlayerSummary(ctx, steamID)
	}()
	go func() {
		defer wg.Done()
		games, err := s.client.GetOwnedGames(ctx, steamID)
		if err != nil {
			s.warn(ctx, "owned games unavailable during session assembly", err)
			return
		}
		gameCount = len(games)
	}()
	go func() {
		defer wg.Done()
		lvl, err := s.client.GetSteamLevel(ctx, steamID)
		if err != nil {
			s.warn(ctx, "steam level unavailable during session assembly", err)
			return
		}
		level = lvl
	}()
	wg.Wait()

	if summaryErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, summaryErr, "fetch player summary")
	}

	return &session.Record{
		SteamID:     summary.SteamID,
		PersonaName: summary.PersonaName,
		Avatar:      summary.AvatarMedium,
		GameCount:   gameCount,
		Level:       level,
	}, nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "cause", err.Error()), msg)
}
