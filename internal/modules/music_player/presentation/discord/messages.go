package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// MaxMessageLength is Discord's limit on the content of a single message.
const MaxMessageLength = 2000

const queueHeader = "🎶 **Queue:**"

// FormatQueue renders the queue as one or more messages, each within
// MaxMessageLength. Lines are numbered from 1 in queue order and never split.
func FormatQueue(tracks []domain.Track) []string {
	lines := make([]string, 0, len(tracks)+1)
	lines = append(lines, queueHeader)
	for i, track := range tracks {
		lines = append(lines, truncate(queueLine(i+1, track), MaxMessageLength))
	}
	return chunkLines(lines, MaxMessageLength)
}

func queueLine(position int, track domain.Track) string {
	return fmt.Sprintf("**%d**. %s `[%s]`", position, track.Title, track.FormattedDuration())
}

// chunkLines joins lines with newlines into messages of at most limit bytes.
func chunkLines(lines []string, limit int) []string {
	var (
		messages []string
		current  strings.Builder
	)

	for _, line := range lines {
		if current.Len() > 0 && current.Len()+1+len(line) > limit {
			messages = append(messages, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}

	return messages
}

// truncate shortens s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	const ellipsis = "…"
	cut := limit - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}
