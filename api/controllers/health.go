package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

// Pinger is implemented by the snapshot backends that hold a connection.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SuperStore-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the snapshot backend answers. A nil pinger is
// the in-process backend and is always ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, backend Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SuperStore-Env", cfg.App.Env)
		if backend != nil {
			if err := backend.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot backend unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status":  "ready",
			"backend": cfg.Snapshot.Backend,
		})
	}
}
