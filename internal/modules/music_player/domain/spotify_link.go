package domain

import (
	"errors"
	"net/url"
	"strings"
)

// spotifyHost is the registrable domain of the metadata service.
const spotifyHost = "spotify.com"

var (
	// ErrInvalidSpotifyLink is returned when a link cannot be parsed as a URL.
	ErrInvalidSpotifyLink = errors.New("invalid spotify link")
	// ErrNotSpotifyTrack is returned when a spotify link does not name a track.
	ErrNotSpotifyTrack = errors.New("spotify link is not a track")
)

// IsSpotifyLink reports whether query is a URL on spotify.com or one of its subdomains.
func IsSpotifyLink(query string) bool {
	u, err := parseLink(query)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == spotifyHost || strings.HasSuffix(host, "."+spotifyHost)
}

// ParseSpotifyTrackID extracts the track ID from a spotify track link,
// e.g. https://open.spotify.com/intl-de/track/4uLU6hMCjMI75M1A2tKUQC?si=x.
func ParseSpotifyTrackID(link string) (string, error) {
	u, err := parseLink(link)
	if err != nil {
		return "", ErrInvalidSpotifyLink
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, segment := range segments {
		if segment != "track" {
			continue
		}
		if i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
		break
	}

	return "", ErrNotSpotifyTrack
}

// SpotifyTrackURL returns the canonical link of the track with the given ID.
func SpotifyTrackURL(id string) string {
	return "https://open.spotify.com/track/" + id
}

func parseLink(link string) (*url.URL, error) {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "www.") || strings.HasPrefix(link, "open.") {
		link = "https://" + link
	}

	u, err := url.Parse(link)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, ErrInvalidSpotifyLink
	}
	return u, nil
}
