package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/service"
	"github.com/alexanderramin/uniconvert/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appWithCurriculum returns an App whose dataset knows IF101 and IF205.
func appWithCurriculum(t *testing.T, opts ...service.Option) *App {
	t.Helper()
	app := testApp(t, opts...)
	app.Dataset.OnCurriculumLoaded(testutil.CurriculumRecords("IF101=Algoritma", "IF205=Basis Data"))
	return app
}

func addDrafts(app *App, drafts ...domain.RowDraft) {
	app.Dataset.AddRows(drafts)
}

func TestRunSessionLine_ExitAndHelp(t *testing.T) {
	app := testApp(t)

	out, quit := runSessionLine(app, "exit")
	assert.True(t, quit)
	assert.Contains(t, out, "Goodbye.")

	_, quit = runSessionLine(app, "QUIT")
	assert.True(t, quit)

	out, quit = runSessionLine(app, "help")
	assert.False(t, quit)
	assert.Contains(t, out, "suggest")
	assert.Contains(t, out, "export")
}

func TestRunSessionLine_BlankAndBadQuoting(t *testing.T) {
	app := testApp(t)

	out, quit := runSessionLine(app, "   ")
	assert.False(t, quit)
	assert.Empty(t, out)

	out, _ = runSessionLine(app, `add --name "Algoritma`)
	assert.Contains(t, out, "unterminated quoted string")
}

func TestRunSessionLine_UnknownCommand(t *testing.T) {
	app := testApp(t)
	out, _ := runSessionLine(app, "frobnicate")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "unknown command")
}

func TestAddCmd_AddsValidatedRow(t *testing.T) {
	app := appWithCurriculum(t)

	out, _ := runSessionLine(app, `add --nim 2101 --name "Basis Data" --grade 80,5 --letter A --code IF205 --curriculum "Kurikulum 2024"`)
	assert.Contains(t, out, "Added 1 row(s)")

	rows := app.Dataset.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Basis Data", rows[0].CourseName)
	assert.Equal(t, 80.5, rows[0].NumericGrade)
	assert.Equal(t, domain.StatusValid, rows[0].Status)
}

func TestAddCmd_RequiresStudentAndName(t *testing.T) {
	app := testApp(t)

	out, _ := runSessionLine(app, "add --name Algoritma")
	assert.Contains(t, out, "student id")

	out, _ = runSessionLine(app, "add --nim 2101")
	assert.Contains(t, out, "course name")
	assert.Empty(t, app.Dataset.Rows())
}

func TestBulkCmd_InlineColumns(t *testing.T) {
	app := appWithCurriculum(t)

	out, _ := runSessionLine(app, `bulk --nim 2101 --curriculum K24 --names "Algoritma|Struktur Data|Jaringan" --grades "85|70,5" --codes "IF101|XX1"`)
	assert.Contains(t, out, "Added 3 row(s)")

	rows := app.Dataset.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 70.5, rows[1].NumericGrade)
	assert.Equal(t, 0.0, rows[2].NumericGrade)
	assert.Equal(t, "", rows[2].EquivalenceCode)
	for _, r := range rows {
		assert.Equal(t, "2101", r.StudentID)
		assert.Equal(t, "K24", r.CurriculumLabel)
	}
	assert.Equal(t, domain.Stats{Total: 3, Valid: 1, Invalid: 2}, app.Dataset.Stats())
}

func TestBulkCmd_FileColumns(t *testing.T) {
	dir := t.TempDir()
	names := filepath.Join(dir, "names.txt")
	codes := filepath.Join(dir, "codes.txt")
	require.NoError(t, os.WriteFile(names, []byte("Algoritma\n\n  Basis Data  \n"), 0o644))
	require.NoError(t, os.WriteFile(codes, []byte("IF101\nIF205\nIF999\n"), 0o644))

	app := appWithCurriculum(t)
	out, _ := runSessionLine(app, "bulk --nim 2101 --names-file "+names+" --codes-file "+codes)
	assert.Contains(t, out, "Added 2 row(s)")

	rows := app.Dataset.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Basis Data", rows[1].CourseName)
	assert.Equal(t, "IF205", rows[1].EquivalenceCode)
}

func TestBulkCmd_RequiresNames(t *testing.T) {
	app := testApp(t)
	out, _ := runSessionLine(app, `bulk --nim 2101 --names "| |"`)
	assert.Contains(t, out, "course names")
	assert.Empty(t, app.Dataset.Rows())
}

func TestListCmd(t *testing.T) {
	app := appWithCurriculum(t)
	addDrafts(app, testutil.NewTestDraft("Algoritma", testutil.WithCode("IF101")))
	addDrafts(app, testutil.NewTestDraft("Struktur Data", testutil.WithCode("XX1")))

	out, _ := runSessionLine(app, "list")
	assert.Contains(t, out, "Algoritma")
	assert.Contains(t, out, "Struktur Data")

	out, _ = runSessionLine(app, "list --invalid")
	assert.NotContains(t, out, "Algoritma")
	assert.Contains(t, out, "Struktur Data")
}

func TestListCmd_NoInvalidRows(t *testing.T) {
	app := appWithCurriculum(t)
	out, _ := runSessionLine(app, "list --invalid")
	assert.Contains(t, out, "No invalid rows.")
}

func TestDeleteCmd(t *testing.T) {
	app := testApp(t)
	addDrafts(app, testutil.NewTestDraft("Algoritma"))
	addDrafts(app, testutil.NewTestDraft("Basis Data"))

	out, _ := runSessionLine(app, "delete #1")
	assert.Contains(t, out, "Deleted row #1.")
	require.Len(t, app.Dataset.Rows(), 1)

	out, _ = runSessionLine(app, "delete 42")
	assert.Contains(t, out, "No row #42.")
	assert.Len(t, app.Dataset.Rows(), 1)

	out, _ = runSessionLine(app, "delete abc")
	assert.Contains(t, out, `invalid row id "abc"`)
}

func TestClearCmd_KeepsCurriculum(t *testing.T) {
	app := appWithCurriculum(t)
	addDrafts(app, testutil.NewTestDraft("Algoritma"))

	out, _ := runSessionLine(app, "clear")
	assert.Contains(t, out, "Cleared 1 row(s).")
	assert.Empty(t, app.Dataset.Rows())
	assert.True(t, app.Dataset.CurriculumLoaded())
}

func TestStatsCmd(t *testing.T) {
	app := testApp(t)
	addDrafts(app, testutil.NewTestDraft("Algoritma"))

	out, _ := runSessionLine(app, "stats")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, domain.MsgCurriculumMissing)
}

func TestCurriculumCmd_ShowAndLoad(t *testing.T) {
	app := testApp(t)
	addDrafts(app, testutil.NewTestDraft("Algoritma", testutil.WithCode("IF101")))

	out, _ := runSessionLine(app, "curriculum")
	assert.Contains(t, out, domain.MsgCurriculumMissing)

	dir := t.TempDir()
	out, _ = runSessionLine(app, "curriculum "+writeCurriculum(t, dir))
	assert.Contains(t, out, "Loaded 2 curriculum course(s).")
	assert.Equal(t, domain.StatusValid, app.Dataset.Rows()[0].Status)

	out, _ = runSessionLine(app, "curriculum")
	assert.Contains(t, out, "IF205")
}

func TestCurriculumCmd_BadFileKeepsState(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a workbook"), 0o644))

	app := appWithCurriculum(t)
	out, _ := runSessionLine(app, "curriculum "+bad)
	assert.Contains(t, out, "Error:")
	assert.True(t, app.Dataset.CurriculumLoaded())
	assert.True(t, strings.HasPrefix(app.Dataset.LastError(), "failed to read curriculum file: "))
}

func TestImportCmd(t *testing.T) {
	dir := t.TempDir()
	app := appWithCurriculum(t)

	out, _ := runSessionLine(app, "import "+writeGrades(t, dir))
	assert.Contains(t, out, "Added 2 row(s)")
	assert.Equal(t, domain.Stats{Total: 2, Valid: 1, Invalid: 1}, app.Dataset.Stats())
}

func TestSuggestAndApplyCmds(t *testing.T) {
	fake := &testutil.FakeSuggester{Suggestions: []domain.Suggestion{
		{OriginalName: "Struktur Data", SuggestedCode: "IF205", Reason: "same topic"},
		{OriginalName: "Jaringan", SuggestedCode: domain.NoMatchCode},
	}}
	app := appWithCurriculum(t, service.WithSuggester(fake))
	addDrafts(app, testutil.NewTestDraft("Struktur Data", testutil.WithCode("XX1")))
	addDrafts(app, testutil.NewTestDraft("Jaringan", testutil.WithCode("XX2")))

	out, _ := runSessionLine(app, "suggest")
	assert.Contains(t, out, "1 suggestion(s) attached.")
	assert.Contains(t, out, "IF205")
	require.Len(t, fake.Invalid, 2)

	out, _ = runSessionLine(app, "apply 2")
	assert.Contains(t, out, "no suggestion to apply")
	assert.Contains(t, out, "Error:")

	out, _ = runSessionLine(app, "apply 1")
	assert.Contains(t, out, "Row #1 now uses IF205.")

	out, _ = runSessionLine(app, "apply #2 IF101")
	assert.Contains(t, out, "Row #2 now uses IF101.")
	assert.Equal(t, domain.Stats{Total: 2, Valid: 2}, app.Dataset.Stats())
}

func TestSuggestCmd_ErrorSetsLastError(t *testing.T) {
	fake := &testutil.FakeSuggester{Err: errors.New("timeout")}
	app := appWithCurriculum(t, service.WithSuggester(fake))
	addDrafts(app, testutil.NewTestDraft("Struktur Data", testutil.WithCode("XX1")))

	out, _ := runSessionLine(app, "suggest")
	assert.Contains(t, out, "Error: timeout")

	out, _ = runSessionLine(app, "stats")
	assert.Contains(t, out, "AI matching failed: timeout")
	assert.False(t, app.Dataset.Rows()[0].HasSuggestion())
}

func TestSuggestCmd_NothingInvalid(t *testing.T) {
	fake := &testutil.FakeSuggester{}
	app := appWithCurriculum(t, service.WithSuggester(fake))
	addDrafts(app, testutil.NewTestDraft("Algoritma", testutil.WithCode("IF101")))

	out, _ := runSessionLine(app, "suggest")
	assert.Contains(t, out, "No suggestion matched")
	assert.Equal(t, 0, fake.Calls)
}

func TestApplyCmd_All(t *testing.T) {
	fake := &testutil.FakeSuggester{Suggestions: []domain.Suggestion{
		{OriginalName: "Struktur Data", SuggestedCode: "IF205"},
		{OriginalName: "Algoritma Lanjut", SuggestedCode: "IF101"},
	}}
	app := appWithCurriculum(t, service.WithSuggester(fake))
	addDrafts(app, testutil.NewTestDraft("Struktur Data", testutil.WithCode("XX1")))
	addDrafts(app, testutil.NewTestDraft("Algoritma Lanjut"))

	runSessionLine(app, "suggest")
	out, _ := runSessionLine(app, "apply --all")
	assert.Contains(t, out, "Applied 2 suggestion(s).")

	out, _ = runSessionLine(app, "apply --all 1")
	assert.Contains(t, out, "Error:")
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	app := testApp(t)

	out, _ := runSessionLine(app, "export --dir "+dir)
	assert.Contains(t, out, service.ErrNothingToExport.Error())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed export leaves no file")

	addDrafts(app, testutil.NewTestDraft("Algoritma"))
	out, _ = runSessionLine(app, "export --dir "+dir)
	assert.Contains(t, out, "Exported")
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunLineShell(t *testing.T) {
	app := appWithCurriculum(t)
	in := strings.NewReader(strings.Join([]string{
		`bulk --nim 2101 --names "Algoritma|Struktur Data" --codes "IF101|XX1"`,
		"",
		"list --invalid",
		"exit",
		"clear",
	}, "\n"))
	var out strings.Builder

	require.NoError(t, runLineShell(app, in, &out))
	assert.Contains(t, out.String(), "Added 2 row(s)")
	assert.Contains(t, out.String(), "Goodbye.")
	assert.Len(t, app.Dataset.Rows(), 2, "lines after exit are not run")
}

func TestShellCmd_PipedInput(t *testing.T) {
	app := appWithCurriculum(t)
	root := NewRootCmd(app)
	var out strings.Builder
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("add --nim 1 --name Algoritma --code IF101\nstats\n"))
	root.SetArgs([]string{"shell"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Added 1 row(s)")
	assert.Contains(t, out.String(), "Valid")
}

func TestSplitShellArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`list`, []string{"list"}},
		{`add --name "Basis Data" --nim 2101`, []string{"add", "--name", "Basis Data", "--nim", "2101"}},
		{`add --name 'Basis  Data'`, []string{"add", "--name", "Basis  Data"}},
		{`add --name Basis\ Data`, []string{"add", "--name", "Basis Data"}},
		{`bulk --names ""`, []string{"bulk", "--names", ""}},
		{"  \t ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := splitShellArgs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := splitShellArgs(`add 'open`)
	assert.Error(t, err)
	_, err = splitShellArgs(`add trailing\`)
	assert.Error(t, err)
}

func TestParseRowID(t *testing.T) {
	id, err := parseRowID("#7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, bad := range []string{"", "0", "-1", "x"} {
		_, err := parseRowID(bad)
		assert.Error(t, err, bad)
	}
}
