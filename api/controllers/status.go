package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/trophyroom/backend/api/responses"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/steam"
)

type serverInfoProber interface {
	GetServerInfo(ctx context.Context) (*steam.ServerInfo, error)
}

type statusPayload struct {
	Upstream   string    `json:"upstream"`
	ServerTime time.Time `json:"serverTime"`
}

// SteamStatus probes the vendor API's keyless utility endpoint to report
// upstream reachability.
func SteamStatus(client serverInfoProber, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "steam client unavailable"))
			return
		}

		info, err := client.GetServerInfo(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, statusPayload{
			Upstream:   "ok",
			ServerTime: info.ServerTime,
		})
	}
}
