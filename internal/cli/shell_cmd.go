package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/alexanderramin/uniconvert/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session over one grade dataset",
		Long: `Start an interactive session. Load a curriculum, enter or import
grade rows, ask for AI code suggestions, and export the recap workbook.
On a terminal the shell has autocomplete, history, and entry forms; with
piped input it reads one command per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, app)
		},
	}
}

func runShell(cmd *cobra.Command, app *App) error {
	if !app.interactive() {
		return runLineShell(app, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	p := tea.NewProgram(newShellModel(app))
	_, err := p.Run()
	return err
}

// runLineShell reads commands from in until EOF or exit. Suggestions run
// synchronously.
func runLineShell(app *App, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		output, quit := runSessionLine(app, scanner.Text())
		if output != "" {
			fmt.Fprintln(out, output)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur []rune

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, string(cur))
		cur = cur[:0]
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur = append(cur, r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur = append(cur, r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur = append(cur, r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur = append(cur, r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}

func shellWelcome(app *App) string {
	return formatter.FormatShellWelcome(app.Provider)
}
