package lichess

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ftotnem/lichess-stats/shared/api"
	"github.com/Ftotnem/lichess-stats/shared/models"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Lichess API root.
const DefaultBaseURL = "https://lichess.org"

var (
	// ErrUserNotFound is returned when Lichess answers 404 for the username.
	ErrUserNotFound = errors.New("lichess user not found")
	// ErrInvalidUsername is returned before any request is made for a blank username.
	ErrInvalidUsername = errors.New("invalid lichess username")
)

// Client fetches public user data from the Lichess API.
type Client struct {
	apiClient *api.Client
	logger    *zap.Logger
}

// NewClient creates a Lichess client rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiClient: api.NewClient(strings.TrimRight(baseURL, "/"), httpClient, logger),
		logger:    logger,
	}
}

// FetchUser calls GET /api/user/{username}.
func (c *Client) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	c.logger.Info("Fetching Lichess user", zap.String("username", username))

	profile := &models.UserProfile{}
	err := c.apiClient.Get(ctx, "/api/user/"+url.PathEscape(username), profile)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUserNotFound, username, err)
		}
		return nil, fmt.Errorf("failed to fetch lichess user %s: %w", username, err)
	}

	c.logger.Debug("Fetched Lichess user",
		zap.String("username", profile.Username),
		zap.Int64("seen_at", profile.SeenAt),
		zap.Int("rapid", models.Rating(profile.Perfs.Rapid)),
		zap.Int("blitz", models.Rating(profile.Perfs.Blitz)),
		zap.Int("bullet", models.Rating(profile.Perfs.Bullet)),
	)
	return profile, nil
}
