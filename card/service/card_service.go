package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ftotnem/lichess-stats/card/render"
	"github.com/Ftotnem/lichess-stats/shared/api"
	"github.com/Ftotnem/lichess-stats/shared/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUpstream wraps every failure to obtain a profile from Lichess.
var ErrUpstream = errors.New("upstream fetch failed")

// ProfileFetcher retrieves a decoded user profile.
type ProfileFetcher interface {
	FetchUser(ctx context.Context, username string) (*models.UserProfile, error)
}

// CardRenderer turns a profile into markup.
type CardRenderer interface {
	Render(profile *models.UserProfile, now time.Time, variant render.Variant) (string, error)
}

// LookupRecorder stores request metadata. It never sees the rendered card.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, record *models.LookupRecord) error
}

// CardService fetches a profile and renders its stats card.
type CardService struct {
	fetcher  ProfileFetcher
	renderer CardRenderer
	recorder LookupRecorder // optional
	clock    func() time.Time
	logger   *zap.Logger
}

// Option configures a CardService.
type Option func(*CardService)

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(cs *CardService) { cs.clock = clock }
}

// WithLookupRecorder enables the lookup audit log.
func WithLookupRecorder(recorder LookupRecorder) Option {
	return func(cs *CardService) { cs.recorder = recorder }
}

// NewCardService creates a CardService. A nil renderer uses render.Renderer.
func NewCardService(fetcher ProfileFetcher, renderer CardRenderer, logger *zap.Logger, opts ...Option) *CardService {
	if renderer == nil {
		renderer = render.Renderer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cs := &CardService{
		fetcher:  fetcher,
		renderer: renderer,
		clock:    time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// RenderCard fetches username from upstream and renders it in variant.
// Errors wrap ErrUpstream or render.ErrMalformedProfile; no partial card is returned.
func (cs *CardService) RenderCard(ctx context.Context, username string, variant render.Variant) (string, error) {
	start := cs.clock()
	record := &models.LookupRecord{
		ID:          uuid.New().String(),
		Username:    username,
		Variant:     variant.String(),
		RequestedAt: start.UTC(),
	}
	defer func() {
		record.DurationMillis = cs.clock().Sub(start).Milliseconds()
		cs.record(ctx, record)
	}()

	profile, err := cs.fetcher.FetchUser(ctx, username)
	if err != nil {
		record.Outcome = models.OutcomeUpstreamError
		record.UpstreamStatus = api.GetHTTPStatusCode(err)
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	svg, err := cs.renderer.Render(profile, cs.clock(), variant)
	if err != nil {
		record.Outcome = models.OutcomeMalformedProfile
		return "", fmt.Errorf("failed to render card for %s: %w", username, err)
	}

	record.Outcome = models.OutcomeOK
	cs.logger.Debug("Rendered stats card",
		zap.String("username", username),
		zap.Stringer("variant", variant),
		zap.Int("bytes", len(svg)),
	)
	return svg, nil
}

func (cs *CardService) record(ctx context.Context, record *models.LookupRecord) {
	if cs.recorder == nil {
		return
	}
	// The request context may already be cancelled once the response is written.
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := cs.recorder.RecordLookup(recCtx, record); err != nil {
		cs.logger.Warn("Failed to record lookup",
			zap.String("username", record.Username),
			zap.Error(err),
		)
	}
}
