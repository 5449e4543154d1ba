// card/api/handler.go
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Ftotnem/lichess-stats/card/render"
	"github.com/Ftotnem/lichess-stats/shared/api"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// fetchFailedMessage is the only error text a failed card request ever sees.
const fetchFailedMessage = "Error fetching data"

// CardRenderingService is the business logic behind the stats card endpoint.
type CardRenderingService interface {
	RenderCard(ctx context.Context, username string, variant render.Variant) (string, error)
}

// CardAPIHandlers holds references to the services that handle business logic.
type CardAPIHandlers struct {
	CardService    CardRenderingService
	DefaultVariant render.Variant
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// NewCardAPIHandlers is the constructor for the card API handlers.
func NewCardAPIHandlers(cs CardRenderingService, defaultVariant render.Variant, requestTimeout time.Duration, logger *zap.Logger) *CardAPIHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &CardAPIHandlers{
		CardService:    cs,
		DefaultVariant: defaultVariant,
		RequestTimeout: requestTimeout,
		Logger:         logger,
	}
}

// StatsCardHandler renders a user's stats card.
// GET /lichess-stats/{username}[?variant=compact|wide|wide-nostatus]
func (cah *CardAPIHandlers) StatsCardHandler(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(mux.Vars(r)["username"])
	if username == "" {
		api.WriteBadRequest(w, "Username is required")
		return
	}

	variant := cah.DefaultVariant
	if v := r.URL.Query().Get("variant"); v != "" {
		parsed, err := render.ParseVariant(v)
		if err != nil {
			api.WriteBadRequest(w, "Unknown card variant")
			return
		}
		variant = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), cah.RequestTimeout)
	defer cancel()

	svg, err := cah.CardService.RenderCard(ctx, username, variant)
	if err != nil {
		cah.Logger.Error("Error rendering stats card",
			zap.String("username", username),
			zap.Stringer("variant", variant),
			zap.String("request_id", api.RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		api.WriteInternalServerError(w, fetchFailedMessage)
		return
	}

	// Cards reflect "now", so intermediaries must not reuse them.
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if err := api.WriteSVG(w, http.StatusOK, svg); err != nil {
		cah.Logger.Warn("Failed to write stats card", zap.String("username", username), zap.Error(err))
	}
}

// RegisterRoutes registers all API endpoints for the card service.
func (cah *CardAPIHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/lichess-stats/{username}", cah.StatsCardHandler).Methods(http.MethodGet, http.MethodOptions)
}
