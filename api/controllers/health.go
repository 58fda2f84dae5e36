package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/vidly-backend/api/responses"
	"github.com/angelmondragon/vidly-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/vidly-backend/pkg/redis"
)

const (
	envHeader    = "X-Vidly-Env"
	readyTimeout = 2 * time.Second
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, redis. A nil pinger is skipped.
func HealthReady(cfg *config.Config, database, cache pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		for name, p := range map[string]pkgredis.Pinger{"database": database, "redis": cache} {
			if p == nil {
				continue
			}
			if err := p.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
			checks[name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
