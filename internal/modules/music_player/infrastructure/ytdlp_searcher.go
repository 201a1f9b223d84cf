package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
	"golang.org/x/sync/singleflight"
)

// ErrNoSearchResults is returned when the search tool finds nothing playable.
var ErrNoSearchResults = errors.New("no search results")

// searchOutputTemplate makes yt-dlp print one "<title>|<url>" line per result.
const searchOutputTemplate = "%(title)s|%(webpage_url)s"

// ytdlpRunner runs a single-result search and returns the tool's stdout.
type ytdlpRunner func(ctx context.Context, query string) (string, error)

// YtdlpSearcher is the fallback search backed by the yt-dlp command line tool.
// Concurrent searches for the same query share one process.
type YtdlpSearcher struct {
	run     ytdlpRunner
	timeout time.Duration
	group   singleflight.Group
}

// NewYtdlpSearcher creates a new YtdlpSearcher. Each search is killed after timeout.
func NewYtdlpSearcher(timeout time.Duration) *YtdlpSearcher {
	return &YtdlpSearcher{
		run:     runYtdlpSearch,
		timeout: timeout,
	}
}

func runYtdlpSearch(ctx context.Context, query string) (string, error) {
	res, err := ytdlp.New().
		Print(searchOutputTemplate).
		NoWarnings().
		IgnoreConfig().
		Run(ctx, "ytsearch1:"+query)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// Search returns the first match for query.
func (s *YtdlpSearcher) Search(ctx context.Context, query string) (domain.ResolvedTrack, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err, _ := s.group.Do(query, func() (any, error) {
		out, err := s.run(ctx, query)
		if err != nil {
			return domain.ResolvedTrack{}, fmt.Errorf("%w: %w", ErrNoSearchResults, err)
		}
		return parseSearchOutput(out)
	})
	if err != nil {
		return domain.ResolvedTrack{}, err
	}

	return result.(domain.ResolvedTrack), nil
}

// parseSearchOutput reads the first non-empty "<title>|<url>" line.
// Titles may contain '|', so the line is split on the last one.
func parseSearchOutput(out string) (domain.ResolvedTrack, error) {
	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sep := strings.LastIndex(line, "|")
		if sep < 0 {
			return domain.ResolvedTrack{}, ErrNoSearchResults
		}

		track := domain.ResolvedTrack{
			Title: strings.TrimSpace(line[:sep]),
			URL:   strings.TrimSpace(line[sep+1:]),
		}
		// yt-dlp prints NA for missing fields
		if track.URL == "" || track.URL == "NA" {
			return domain.ResolvedTrack{}, ErrNoSearchResults
		}
		return track, nil
	}

	return domain.ResolvedTrack{}, ErrNoSearchResults
}

var _ ports.FallbackSearcher = (*YtdlpSearcher)(nil)
