package repl

import (
	"sort"
	"strings"
)

// builtins are handled by the REPL itself.
var builtins = []string{"exit", "help", "history", "quit"}

// Completer knows the shell's command words.
type Completer struct {
	commands []string
	top      map[string]bool
}

// NewCompleter creates a Completer for commands, given as space-separated
// paths such as "list" or "host show". Builtins are always included.
func NewCompleter(commands []string) *Completer {
	c := &Completer{top: make(map[string]bool)}
	seen := make(map[string]bool)

	for _, cmd := range append(append([]string{}, commands...), builtins...) {
		cmd = strings.Join(strings.Fields(cmd), " ")
		if cmd == "" || seen[cmd] {
			continue
		}
		seen[cmd] = true
		c.commands = append(c.commands, cmd)
		word, _, _ := strings.Cut(cmd, " ")
		c.top[word] = true
	}

	sort.Strings(c.commands)
	return c
}

// Known reports whether word is a top-level command.
func (c *Completer) Known(word string) bool {
	return c.top[word]
}

// Complete returns completion suggestions for the given prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
