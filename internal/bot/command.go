package bot

import "strings"

// CommandPrefix marks a message as a bot command.
const CommandPrefix = "!"

// Command is a text command parsed from a guild message.
type Command struct {
	// Name is the literal first token including the prefix, e.g. "!play".
	Name string
	// Args holds the remaining whitespace-separated tokens.
	Args []string
	// RequestID correlates log lines emitted while handling this command.
	RequestID string
}

// ParseCommand splits content on whitespace and returns the command it names.
// Returns false if the message does not start with CommandPrefix.
func ParseCommand(content string) (Command, bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], CommandPrefix) {
		return Command{}, false
	}

	return Command{
		Name: fields[0],
		Args: fields[1:],
	}, true
}

// Argument returns all arguments joined by a single space.
func (c Command) Argument() string {
	return strings.Join(c.Args, " ")
}
