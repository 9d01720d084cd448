package cli

import (
	"github.com/alexanderramin/uniconvert/internal/service"
	"github.com/alexanderramin/uniconvert/internal/spreadsheet"
	"github.com/spf13/cobra"
)

// App holds the state shared by every command.
type App struct {
	Dataset *service.Dataset

	// Provider is shown in the shell banner. Empty when AI matching is off.
	Provider string

	// HistoryPath is where the interactive shell keeps its history. Empty
	// disables persistence.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Setup runs before any command with the --config value. It fills in
	// Dataset and Provider.
	Setup func(configPath string) error

	// Decode reads workbooks for the check command. Defaults to
	// spreadsheet.Decode.
	Decode service.SheetDecoder
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) decoder() service.SheetDecoder {
	if a.Decode != nil {
		return a.Decode
	}
	return spreadsheet.Decode
}

// NewRootCmd creates the top-level "uniconvert" command. Without a
// subcommand it opens the shell on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "uniconvert",
		Short: "Validate course-grade conversions against a curriculum",
		Long: `uniconvert checks each student course row against the equivalence
codes of a target curriculum, asks an AI model to suggest codes for the
rows that do not match, and exports the result as a recap workbook.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup != nil {
				if err := app.Setup(configPath); err != nil {
					return err
				}
			}
			if app.Dataset == nil {
				app.Dataset = service.NewDataset()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runShell(cmd, app)
			}
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $UNICONVERT_CONFIG)")

	root.AddCommand(
		newCheckCmd(app),
		newShellCmd(app),
	)

	return root
}
