package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the welcome banner shown on shell startup.
func FormatShellWelcome(provider string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  uniconvert") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Load a curriculum, enter grades, and fix invalid equivalence codes.") + "\n")
	b.WriteString("\n")
	b.WriteString("  " + StyleGreen.Render("curriculum <file>") + StyleDim.Render("  Load the target curriculum") + "\n")
	b.WriteString("  " + StyleGreen.Render("bulk") + StyleDim.Render("               Enter many courses for one student") + "\n")
	b.WriteString("  " + StyleGreen.Render("list") + StyleDim.Render("               Show the grade table") + "\n")
	b.WriteString("  " + StyleGreen.Render("suggest") + StyleDim.Render("            Ask AI for corrected codes") + "\n")
	b.WriteString("  " + StyleGreen.Render("export") + StyleDim.Render("             Write the recap workbook") + "\n")
	b.WriteString("\n")
	if provider != "" {
		b.WriteString(StyleDim.Render("  AI provider: "+provider) + "\n")
	}
	b.WriteString(StyleDim.Render("  Tab for autocomplete. Type 'help' for all commands.") + "\n")
	b.WriteString("\n")

	return b.String()
}

// helpCategory groups commands under a section header for the help display.
type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-32s %s\n",
			StyleGreen.Render(c[0]),
			StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the categorized command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Curriculum",
			commands: [][]string{
				{"curriculum <file>", "Load a curriculum workbook (replaces the current one)"},
				{"curriculum", "Show the loaded curriculum"},
			},
		},
		{
			title: "Grades",
			commands: [][]string{
				{"add", "Add one row (form if flags omitted)"},
				{"bulk", "Add many rows for one student (form if flags omitted)"},
				{"import <file>", "Append rows from a grade workbook"},
				{"list [--invalid]", "Show the grade table"},
				{"stats", "Show totals and the latest error"},
				{"delete <id>", "Remove a row"},
				{"clear", "Remove every row"},
			},
		},
		{
			title: "AI matching",
			commands: [][]string{
				{"suggest", "Suggest codes for invalid rows"},
				{"apply <id> [code]", "Apply the suggestion, or a code of your choice"},
			},
		},
		{
			title: "Output",
			commands: [][]string{
				{"export [--dir DIR]", "Write Rekap_Konversi_Gabungan_<time>.xlsx"},
				{"help", "Show this command reference"},
				{"exit / quit", "Quit uniconvert"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}

	b.WriteString("\n" + StyleDim.Render(
		"Bulk flags take one value per line; separate lines with '|'\n"+
			"or read them from a file with --names-file, --grades-file, ..."))

	return RenderBox("Commands", b.String())
}
