package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantOK   bool
		wantName string
		wantArgs []string
	}{
		{
			name:     "command without arguments",
			content:  "!skip",
			wantOK:   true,
			wantName: "!skip",
			wantArgs: []string{},
		},
		{
			name:     "command with arguments",
			content:  "!play never gonna give you up",
			wantOK:   true,
			wantName: "!play",
			wantArgs: []string{"never", "gonna", "give", "you", "up"},
		},
		{
			name:     "collapses repeated whitespace",
			content:  "  !play   lofi\tbeats  ",
			wantOK:   true,
			wantName: "!play",
			wantArgs: []string{"lofi", "beats"},
		},
		{
			name:     "name keeps case",
			content:  "!PLAY song",
			wantOK:   true,
			wantName: "!PLAY",
			wantArgs: []string{"song"},
		},
		{
			name:    "plain message",
			content: "hello there",
			wantOK:  false,
		},
		{
			name:    "empty message",
			content: "   ",
			wantOK:  false,
		},
		{
			name:    "prefix not in first token",
			content: "please !play song",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := ParseCommand(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if cmd.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, cmd.Name)
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, cmd.Args)
			}
		})
	}
}

func TestCommand_Argument(t *testing.T) {
	cmd, _ := ParseCommand("!play  https://open.spotify.com/track/abc?si=1   extra")

	want := "https://open.spotify.com/track/abc?si=1 extra"
	if got := cmd.Argument(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	empty, _ := ParseCommand("!play")
	if got := empty.Argument(); got != "" {
		t.Errorf("expected empty argument, got %q", got)
	}
}
