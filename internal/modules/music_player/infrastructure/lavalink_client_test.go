package infrastructure

import (
	"testing"
	"time"

	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

func TestConvertEndReason(t *testing.T) {
	tests := []struct {
		input    lavalink.TrackEndReason
		expected domain.TrackEndReason
	}{
		{lavalink.TrackEndReasonFinished, domain.TrackEndFinished},
		{lavalink.TrackEndReasonLoadFailed, domain.TrackEndLoadFailed},
		{lavalink.TrackEndReasonStopped, domain.TrackEndStopped},
		{lavalink.TrackEndReasonReplaced, domain.TrackEndReplaced},
		{lavalink.TrackEndReasonCleanup, domain.TrackEndCleanup},
		{lavalink.TrackEndReason("unknown"), domain.TrackEndStopped},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := convertEndReason(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConvertLoadResult(t *testing.T) {
	uri := "https://www.youtube.com/watch?v=abc"
	track := lavalink.Track{
		Encoded: "encoded",
		Info: lavalink.TrackInfo{
			Identifier: "abc",
			Title:      "Song",
			Author:     "Artist",
			Length:     185000,
			URI:        &uri,
		},
	}

	tests := []struct {
		name         string
		result       *lavalink.LoadResult
		expectedType ports.LoadType
		expectedLen  int
	}{
		{
			name:         "single track",
			result:       &lavalink.LoadResult{LoadType: lavalink.LoadTypeTrack, Data: track},
			expectedType: ports.LoadTypeTrack,
			expectedLen:  1,
		},
		{
			name: "playlist",
			result: &lavalink.LoadResult{
				LoadType: lavalink.LoadTypePlaylist,
				Data:     lavalink.Playlist{Tracks: []lavalink.Track{track, track}},
			},
			expectedType: ports.LoadTypePlaylist,
			expectedLen:  2,
		},
		{
			name: "search",
			result: &lavalink.LoadResult{
				LoadType: lavalink.LoadTypeSearch,
				Data:     lavalink.Search{track, track, track},
			},
			expectedType: ports.LoadTypeSearch,
			expectedLen:  3,
		},
		{
			name: "exception",
			result: &lavalink.LoadResult{
				LoadType: lavalink.LoadTypeError,
				Data:     lavalink.Exception{Message: "boom"},
			},
			expectedType: ports.LoadTypeError,
		},
		{
			name:         "empty",
			result:       &lavalink.LoadResult{LoadType: lavalink.LoadTypeEmpty, Data: lavalink.Empty{}},
			expectedType: ports.LoadTypeEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertLoadResult(tt.result)

			if got.Type != tt.expectedType {
				t.Errorf("expected type %q, got %q", tt.expectedType, got.Type)
			}
			if len(got.Tracks) != tt.expectedLen {
				t.Errorf("expected %d tracks, got %d", tt.expectedLen, len(got.Tracks))
			}
		})
	}
}

func TestConvertTrack(t *testing.T) {
	uri := "https://example.com/stream"
	got := convertTrack(lavalink.Track{
		Encoded: "encoded",
		Info: lavalink.TrackInfo{
			Identifier: "id",
			Title:      "Radio",
			Author:     "Station",
			Length:     90500,
			URI:        &uri,
			IsStream:   true,
		},
	})

	expected := &ports.TrackInfo{
		Identifier: "id",
		Encoded:    "encoded",
		Title:      "Radio",
		Artist:     "Station",
		Duration:   90500 * time.Millisecond,
		URI:        uri,
		IsStream:   true,
	}
	if *got != *expected {
		t.Errorf("expected %+v, got %+v", expected, got)
	}

	// A missing URI becomes empty
	if got := convertTrack(lavalink.Track{}); got.URI != "" {
		t.Errorf("expected empty URI, got %q", got.URI)
	}
}

func TestVoiceEventBuffer(t *testing.T) {
	t.Run("state then server", func(t *testing.T) {
		var b voiceEventBuffer
		channelID := snowflake.ID(100)

		if b.setVoiceState(&channelID, "session") {
			t.Error("expected not ready after voice state only")
		}
		if !b.setVoiceServer("token", "endpoint") {
			t.Error("expected ready after both events")
		}

		gotChannel, session, token, endpoint := b.take()
		if gotChannel == nil || *gotChannel != channelID {
			t.Errorf("unexpected channel %v", gotChannel)
		}
		if session != "session" || token != "token" || endpoint != "endpoint" {
			t.Errorf("unexpected data %q %q %q", session, token, endpoint)
		}
	})

	t.Run("server then state", func(t *testing.T) {
		var b voiceEventBuffer
		channelID := snowflake.ID(100)

		if b.setVoiceServer("token", "endpoint") {
			t.Error("expected not ready after voice server only")
		}
		if !b.setVoiceState(&channelID, "session") {
			t.Error("expected ready after both events")
		}
	})

	t.Run("take resets", func(t *testing.T) {
		var b voiceEventBuffer
		channelID := snowflake.ID(100)
		b.setVoiceState(&channelID, "session")
		b.setVoiceServer("token", "endpoint")
		b.take()

		if b.setVoiceServer("token2", "endpoint2") {
			t.Error("expected buffer to be empty after take")
		}
	})
}

func TestPendingVoiceConnection(t *testing.T) {
	p := &pendingVoiceConnection{ready: make(chan struct{})}

	p.onEvent(true)
	select {
	case <-p.ready:
		t.Fatal("expected not ready after one event")
	default:
	}

	p.onEvent(false)
	select {
	case <-p.ready:
	default:
		t.Fatal("expected ready after both events")
	}

	// Extra events must not close the channel twice
	p.onEvent(true)
	p.onEvent(false)
}
