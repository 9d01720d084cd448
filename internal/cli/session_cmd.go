package cli

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/cli/formatter"
	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/spf13/cobra"
)

// newSessionRoot builds the command tree the shells dispatch each line to.
// A fresh tree is built per line so flag values never leak between lines.
func newSessionRoot(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "uniconvert",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newCurriculumCmd(app),
		newImportCmd(app),
		newAddCmd(app),
		newBulkCmd(app),
		newListCmd(app),
		newStatsCmd(app),
		newDeleteCmd(app),
		newClearCmd(app),
		newSuggestCmd(app),
		newApplyCmd(app),
		newExportCmd(app),
	)
	return root
}

// execSessionArgs runs one tokenized shell line and returns its output.
// Errors are rendered into the output.
func execSessionArgs(app *App, args []string) string {
	root := newSessionRoot(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteString("\n")
		}
		buf.WriteString(formatter.Error(err))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// runSessionLine handles one line of either shell. It reports whether the
// user asked to leave.
func runSessionLine(app *App, line string) (string, bool) {
	parts, err := splitShellArgs(strings.TrimSpace(line))
	if err != nil {
		return formatter.Error(err), false
	}
	if len(parts) == 0 {
		return "", false
	}
	switch strings.ToLower(parts[0]) {
	case "exit", "quit":
		return formatter.Dim("Goodbye."), true
	case "help":
		return formatter.FormatShellHelp(), false
	}
	return execSessionArgs(app, parts), false
}

func newCurriculumCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "curriculum [file]",
		Short: "Load a curriculum workbook, or show the loaded one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := app.Dataset
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCurriculum(ds.Curriculum()))
				return nil
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			n, err := ds.LoadCurriculumFile(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCurriculumLoaded(n, ds.Stats()))
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append rows from a grade workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			rows, err := app.Dataset.ImportGradeFile(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAdded(rows))
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var e importer.SingleEntry

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one course row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := importer.BuildSingleRow(e)
			if err != nil {
				return err
			}
			rows := app.Dataset.AddRows([]domain.RowDraft{draft})
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAdded(rows))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRows(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&e.StudentID, "nim", "", "student id (required)")
	cmd.Flags().StringVar(&e.CourseName, "name", "", "course name (required)")
	cmd.Flags().StringVar(&e.NumericGrade, "grade", "", "numeric grade, comma or dot decimal")
	cmd.Flags().StringVar(&e.LetterGrade, "letter", "", "letter grade")
	cmd.Flags().StringVar(&e.EquivalenceCode, "code", "", "equivalence code")
	cmd.Flags().StringVar(&e.CurriculumLabel, "curriculum", "", "curriculum label")
	return cmd
}

// bulkColumn is one multi-line column of the bulk command, given inline with
// '|' separators or read from a file.
type bulkColumn struct {
	inline string
	file   string
}

func (c bulkColumn) text() (string, error) {
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return strings.ReplaceAll(c.inline, "|", "\n"), nil
}

func newBulkCmd(app *App) *cobra.Command {
	var (
		studentID, label              string
		names, grades, letters, codes bulkColumn
	)

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Add many course rows for one student",
		Example: `  bulk --nim 2101 --curriculum "Kurikulum 2024" --names "Algoritma|Basis Data" --grades "85|70,5" --codes "IF101|IF205"
  bulk --nim 2101 --names-file names.txt --codes-file codes.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := importer.BulkEntry{StudentID: studentID, CurriculumLabel: label}
			var err error
			if e.Names, err = names.text(); err != nil {
				return err
			}
			if e.NumericGrades, err = grades.text(); err != nil {
				return err
			}
			if e.LetterGrades, err = letters.text(); err != nil {
				return err
			}
			if e.Codes, err = codes.text(); err != nil {
				return err
			}
			if err := validateBulkEntry(e); err != nil {
				return err
			}

			rows := app.Dataset.AddRows(importer.BuildBulkRows(e))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAdded(rows))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRows(rows))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&studentID, "nim", "", "student id (required)")
	f.StringVar(&label, "curriculum", "", "curriculum label for every row")
	f.StringVar(&names.inline, "names", "", "course names, '|' separated")
	f.StringVar(&grades.inline, "grades", "", "numeric grades, '|' separated")
	f.StringVar(&letters.inline, "letters", "", "letter grades, '|' separated")
	f.StringVar(&codes.inline, "codes", "", "equivalence codes, '|' separated")
	f.StringVar(&names.file, "names-file", "", "read course names from a file, one per line")
	f.StringVar(&grades.file, "grades-file", "", "read numeric grades from a file")
	f.StringVar(&letters.file, "letters-file", "", "read letter grades from a file")
	f.StringVar(&codes.file, "codes-file", "", "read equivalence codes from a file")
	cmd.MarkFlagsMutuallyExclusive("names", "names-file")
	cmd.MarkFlagsMutuallyExclusive("grades", "grades-file")
	cmd.MarkFlagsMutuallyExclusive("letters", "letters-file")
	cmd.MarkFlagsMutuallyExclusive("codes", "codes-file")
	return cmd
}

// validateBulkEntry requires a student id and at least one course name.
func validateBulkEntry(e importer.BulkEntry) error {
	if strings.TrimSpace(e.StudentID) == "" {
		return fmt.Errorf("%w: student id", importer.ErrMissingField)
	}
	if len(importer.CleanLines(e.Names)) == 0 {
		return fmt.Errorf("%w: course names", importer.ErrMissingField)
	}
	return nil
}

func newListCmd(app *App) *cobra.Command {
	var invalidOnly bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the grade table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := app.Dataset.Rows()
			if invalidOnly {
				rows = app.Dataset.InvalidRows()
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No invalid rows."))
					return nil
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRows(rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&invalidOnly, "invalid", false, "show only invalid rows")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row totals and the latest error",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(statsView(app.Dataset)))
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a row",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Dataset.Row(id); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("No row #%d.", id)))
				return nil
			}
			app.Dataset.DeleteRow(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Deleted row #%d.", id)))
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every row (the curriculum is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := len(app.Dataset.Rows())
			app.Dataset.ClearAll()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Cleared %d row(s).", n)))
			return nil
		},
	}
}

func newSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Ask the AI model for codes for invalid rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			attached, err := app.Dataset.RequestSuggestions(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), formatSuggestResult(app.Dataset, attached, err))
			return nil
		},
	}
}

func newApplyCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "apply [id] [code]",
		Short: "Apply a row's suggestion, or set a code of your choice",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := app.Dataset
			if all {
				fmt.Fprintln(cmd.OutOrStdout(), formatApplied(ds.ApplyAllSuggestions()))
				return nil
			}
			id, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				err = ds.ApplySuggestion(id, strings.TrimSpace(args[1]))
			} else {
				err = ds.ApplyAttached(id)
			}
			if err != nil {
				return err
			}
			row, err := ds.Row(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(
				fmt.Sprintf("Row #%d now uses %s.", id, row.EquivalenceCode)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "apply every attached suggestion")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the recap workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := exportTo(cmd.Context(), app.Dataset, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatExported(path))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	return cmd
}

// parseRowID accepts "3" or "#3".
func parseRowID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid row id %q", s)
	}
	return id, nil
}
