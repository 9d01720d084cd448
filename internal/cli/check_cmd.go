package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/uniconvert/internal/cli/formatter"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/alexanderramin/uniconvert/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCmd(app *App) *cobra.Command {
	var (
		curriculumPath string
		gradesPath     string
		outDir         string
		suggest        bool
		apply          bool
		invalidOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a grade workbook against a curriculum workbook",
		Example: `  uniconvert check --curriculum kurikulum.xlsx --grades nilai.xlsx
  uniconvert check --curriculum kurikulum.xlsx --grades nilai.xlsx --apply --out ./rekap`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			ds := app.Dataset

			curriculum, grades, err := decodeWorkbooks(ctx, app.decoder(), curriculumPath, gradesPath)
			if err != nil {
				return err
			}

			n := ds.OnCurriculumLoaded(curriculum)
			added := ds.AddRows(importer.GradeRowsFromRecords(importer.NormalizeAll(grades)))
			fmt.Fprintln(out, formatter.FormatCurriculumLoaded(n, ds.Stats()))
			fmt.Fprintln(out, formatter.FormatAdded(added))

			if suggest || apply {
				stop := func() {}
				if app.interactive() {
					stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Matching invalid courses…")
				}
				attached, err := ds.RequestSuggestions(ctx)
				stop()
				fmt.Fprintln(out, formatSuggestResult(ds, attached, err))
				if apply && err == nil {
					fmt.Fprintln(out, formatApplied(ds.ApplyAllSuggestions()))
				}
			}

			rows := ds.Rows()
			if invalidOnly {
				rows = ds.InvalidRows()
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatRows(rows))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatStats(statsView(ds)))

			if outDir != "" {
				path, err := exportTo(ctx, ds, outDir)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatExported(path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&curriculumPath, "curriculum", "", "curriculum workbook (.xlsx)")
	cmd.Flags().StringVar(&gradesPath, "grades", "", "grade workbook (.xlsx)")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "ask the AI model for codes for invalid rows")
	cmd.Flags().BoolVar(&apply, "apply", false, "apply every suggestion (implies --suggest)")
	cmd.Flags().StringVar(&outDir, "out", "", "write the recap workbook into this directory")
	cmd.Flags().BoolVar(&invalidOnly, "invalid-only", false, "list only invalid rows")
	_ = cmd.MarkFlagRequired("curriculum")
	_ = cmd.MarkFlagRequired("grades")

	return cmd
}

// decodeWorkbooks reads the curriculum and grade workbooks concurrently.
func decodeWorkbooks(ctx context.Context, decode service.SheetDecoder, curriculumPath, gradesPath string) (curriculum, grades []map[string]string, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := decodeFile(decode, curriculumPath)
		if err != nil {
			return fmt.Errorf("failed to read curriculum file: %w", err)
		}
		curriculum = recs
		return nil
	})
	g.Go(func() error {
		recs, err := decodeFile(decode, gradesPath)
		if err != nil {
			return fmt.Errorf("failed to read grade file: %w", err)
		}
		grades = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return curriculum, grades, nil
}

func decodeFile(decode service.SheetDecoder, path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}
