package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
	"golang.org/x/time/rate"
)

// ErrEmptyTitle is returned when the metadata service answers without a title.
var ErrEmptyTitle = errors.New("metadata response has no title")

// SpotifyConfig contains the metadata lookup configuration.
type SpotifyConfig struct {
	OEmbedURL string
	Timeout   time.Duration
	RateLimit float64 // requests per second
	RateBurst int
}

// SpotifyResolver turns spotify track links into search strings using the
// track title from the public oEmbed endpoint.
type SpotifyResolver struct {
	httpClient *http.Client
	oembedURL  string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// NewSpotifyResolver creates a new SpotifyResolver.
func NewSpotifyResolver(config SpotifyConfig) *SpotifyResolver {
	return &SpotifyResolver{
		httpClient: &http.Client{},
		oembedURL:  config.OEmbedURL,
		timeout:    config.Timeout,
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}
}

type oembedResponse struct {
	Title string `json:"title"`
}

// ResolveTitle looks up the title of the track a spotify link points to.
func (r *SpotifyResolver) ResolveTitle(ctx context.Context, link string) (string, error) {
	id, err := domain.ParseSpotifyTrackID(link)
	if err != nil {
		return "", err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("metadata rate limit: %w", err)
	}

	endpoint, err := url.Parse(r.oembedURL)
	if err != nil {
		return "", fmt.Errorf("invalid oembed URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("url", domain.SpotifyTrackURL(id))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("oembed request failed: status %d", resp.StatusCode)
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode oembed response: %w", err)
	}
	if body.Title == "" {
		return "", ErrEmptyTitle
	}

	return body.Title, nil
}

var _ ports.MetadataResolver = (*SpotifyResolver)(nil)
