package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// shellOnlyCommands are handled by the shells before cobra dispatch.
var shellOnlyCommands = []string{"help", "exit", "quit"}

// shellCompleter builds whole-line completions from the session command tree.
// textinput matches suggestions against the full value, so every candidate
// repeats what was already typed.
type shellCompleter struct {
	commands map[string]*cobra.Command
	names    []string
}

func newShellCompleter(root *cobra.Command) *shellCompleter {
	c := &shellCompleter{commands: make(map[string]*cobra.Command)}
	for _, sub := range root.Commands() {
		if sub.Hidden {
			continue
		}
		c.commands[sub.Name()] = sub
		c.names = append(c.names, sub.Name())
		for _, alias := range sub.Aliases {
			c.commands[alias] = sub
		}
	}
	c.names = append(c.names, shellOnlyCommands...)
	sort.Strings(c.names)
	return c
}

func (c *shellCompleter) complete(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 1 && !trailingSpace {
		return filterSuggestions(c.names, parts[0])
	}

	cmd, ok := c.commands[strings.ToLower(parts[0])]
	if !ok {
		return nil
	}

	prefix := ""
	if !trailingSpace {
		prefix = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}
	if prefix != "" && !strings.HasPrefix(prefix, "-") {
		return nil
	}

	used := make(map[string]bool)
	for _, p := range parts[1:] {
		if name, ok := strings.CutPrefix(p, "--"); ok {
			name, _, _ = strings.Cut(name, "=")
			used[name] = true
		}
	}

	var flags []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || used[f.Name] {
			return
		}
		flags = append(flags, "--"+f.Name)
	})

	base := text[:len(text)-len(prefix)]
	matches := filterSuggestions(flags, prefix)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, base+m)
	}
	return out
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
