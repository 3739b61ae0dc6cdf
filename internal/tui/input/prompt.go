// Package input parses the board's slash-command prompt.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminatedQuote is returned when a quoted argument is not closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Usage       string
	Description string
}

// Commands lists the prompt commands in suggestion order.
var Commands = []PromptCommand{
	{Name: "/course", Usage: "<name> <hours> [#color]", Description: "Add a course to the bank"},
	{Name: "/pool", Usage: "<title> <location> <days> [HH-HH]", Description: "Add a pool"},
	{Name: "/hours", Usage: "<pool#> <HH-HH>", Description: "Change pool opening hours"},
	{Name: "/days", Usage: "<pool#> <days>", Description: "Change pool days"},
	{Name: "/rmpool", Usage: "<pool#>", Description: "Remove a pool and its sessions"},
	{Name: "/rmcourse", Usage: "<course#>", Description: "Remove a course and its sessions"},
	{Name: "/recolor", Usage: "<course#> <#color>", Description: "Change a course colour"},
	{Name: "/color", Usage: "<#color>", Description: "Save a custom colour"},
	{Name: "/uncolor", Usage: "<#color>", Description: "Forget a custom colour"},
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// Parse splits a prompt line into a lower-cased command name and its
// arguments. Double quotes group words into one argument.
func Parse(line string) (name string, args []string, err error) {
	fields, err := SplitArgs(line)
	if err != nil {
		return "", nil, err
	}
	if len(fields) == 0 {
		return "", nil, nil
	}
	return strings.ToLower(fields[0]), fields[1:], nil
}

// SplitArgs splits s on spaces, keeping double-quoted runs together.
func SplitArgs(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case r == ' ' && !inQuote:
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w in %q", ErrUnterminatedQuote, s)
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args, nil
}
