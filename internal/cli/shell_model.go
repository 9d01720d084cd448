package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/cli/formatter"
	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/alexanderramin/uniconvert/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// shellMode tracks which interaction mode the shell is in.
type shellMode int

const (
	modePrompt shellMode = iota // Normal command input.
	modeForm                    // huh form is active.
)

// suggestionsMsg carries the result of an AI request back to the control
// loop, where it is merged into the rows.
type suggestionsMsg struct {
	batch       *service.SuggestionBatch
	suggestions []domain.Suggestion
	err         error
}

// shellModel is the bubbletea Model for the interactive shell.
type shellModel struct {
	input   textinput.Model
	spinner spinner.Model
	form    *huh.Form
	width   int

	app       *App
	completer *shellCompleter

	mode     shellMode
	formDone func(m *shellModel) string

	// Curriculum label from the last bulk or add form, prefilled next time.
	lastLabel string

	history    *shellHistory
	historyIdx int

	quitting bool
}

func newShellModel(app *App) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 2000
	// Tab accepts a suggestion; Up/Down stay on history.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)

	hist := newShellHistory(app.HistoryPath)

	return shellModel{
		input:      ti,
		spinner:    sp,
		app:        app,
		completer:  newShellCompleter(newSessionRoot(app)),
		history:    hist,
		historyIdx: hist.len(),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(shellWelcome(m.app)),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len("uniconvert ❯ ") - 1
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case suggestionsMsg:
		attached, err := m.app.Dataset.CompleteSuggestions(context.Background(), msg.batch, msg.suggestions, msg.err)
		if errors.Is(err, service.ErrStaleBatch) {
			return m, nil
		}
		return m, tea.Println(formatSuggestResult(m.app.Dataset, attached, err))

	case spinner.TickMsg:
		if !m.app.Dataset.AIProcessing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updatePrompt(msg)
	}

	// Forms need their own init and focus messages.
	if m.mode == modeForm && m.form != nil {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.mode == modeForm && m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	if m.app.Dataset.AIProcessing() {
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Matching invalid courses…") + "\n")
	}
	b.WriteString(m.promptPrefix() + m.input.View())
	return b.String()
}

func (m *shellModel) promptPrefix() string {
	prefix := formatter.StylePurple.Render("uniconvert")
	if s := m.app.Dataset.Stats(); s.Invalid > 0 {
		prefix += " " + formatter.StyleRed.Render(fmt.Sprintf("(%d invalid)", s.Invalid))
	}
	return prefix + " " + formatter.Dim("❯") + " "
}

// ── prompt mode ──────────────────────────────────────────────────────────────

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.SetSuggestions(nil)
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		output, cmd := m.executeCommand(input)
		var cmds []tea.Cmd
		if output != "" {
			cmds = append(cmds, tea.Println(output))
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Sequence(cmds...)

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.input.SetSuggestions(m.completer.complete(m.input.Value()))
		return m, cmd
	}
}

func (m *shellModel) executeCommand(input string) (string, tea.Cmd) {
	parts, err := splitShellArgs(input)
	if err != nil {
		return formatter.Error(err), nil
	}
	if len(parts) == 0 {
		return "", nil
	}

	switch strings.ToLower(parts[0]) {
	case "suggest":
		if len(parts) == 1 {
			return m.startSuggest()
		}
	case "bulk":
		if len(parts) == 1 {
			return "", m.startBulkForm()
		}
	case "add":
		if len(parts) == 1 {
			return "", m.startAddForm()
		}
	}

	output, quit := runSessionLine(m.app, input)
	if quit {
		m.quitting = true
		return "", tea.Quit
	}
	return output, nil
}

// ── suggestions ──────────────────────────────────────────────────────────────

// startSuggest snapshots the invalid rows and returns a Cmd that runs the AI
// call off the control loop.
func (m *shellModel) startSuggest() (string, tea.Cmd) {
	ds := m.app.Dataset
	batch, err := ds.BeginSuggestions()
	if errors.Is(err, service.ErrNoInvalidRows) {
		return formatter.Dim("No invalid rows to match."), nil
	}
	if err != nil {
		return formatter.Error(err), nil
	}

	fetch := func() tea.Msg {
		suggestions, err := ds.FetchSuggestions(context.Background(), batch)
		return suggestionsMsg{batch: batch, suggestions: suggestions, err: err}
	}
	status := formatter.Dim(fmt.Sprintf("Asking %s about %d invalid course(s)…",
		providerName(m.app.Provider), len(batch.Invalid)))
	return status, tea.Batch(fetch, m.spinner.Tick)
}

func providerName(p string) string {
	if p == "" {
		return "the AI model"
	}
	return p
}

// ── forms ────────────────────────────────────────────────────────────────────

func (m *shellModel) startForm(form *huh.Form, done func(m *shellModel) string) tea.Cmd {
	m.mode = modeForm
	m.form = form
	m.formDone = done
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	return m.form.Init()
}

func (m *shellModel) startBulkForm() tea.Cmd {
	v := &bulkFormValues{CurriculumLabel: m.lastLabel}
	return m.startForm(newBulkForm(v), func(m *shellModel) string {
		return submitBulk(m, v)
	})
}

func (m *shellModel) startAddForm() tea.Cmd {
	v := &addFormValues{CurriculumLabel: m.lastLabel}
	return m.startForm(newAddForm(v), func(m *shellModel) string {
		return submitAdd(m, v)
	})
}

func submitBulk(m *shellModel, v *bulkFormValues) string {
	e := v.entry()
	m.lastLabel = e.CurriculumLabel
	if err := validateBulkEntry(e); err != nil {
		return formatter.Error(err)
	}
	rows := m.app.Dataset.AddRows(importer.BuildBulkRows(e))
	return formatter.FormatAdded(rows) + "\n" + formatter.FormatRows(rows)
}

func submitAdd(m *shellModel, v *addFormValues) string {
	e := v.entry()
	m.lastLabel = e.CurriculumLabel
	draft, err := importer.BuildSingleRow(e)
	if err != nil {
		return formatter.Error(err)
	}
	rows := m.app.Dataset.AddRows([]domain.RowDraft{draft})
	return formatter.FormatAdded(rows) + "\n" + formatter.FormatRows(rows)
}

func (m shellModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.mode = modePrompt
		m.form = nil
		m.formDone = nil
		return m, tea.Println(formatter.Dim("Cancelled."))
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		done := m.formDone
		m.mode = modePrompt
		m.form = nil
		m.formDone = nil
		if done == nil {
			return m, nil
		}
		return m, tea.Println(done(&m))
	case huh.StateAborted:
		m.mode = modePrompt
		m.form = nil
		m.formDone = nil
		return m, tea.Println(formatter.Dim("Cancelled."))
	}
	return m, cmd
}

// ── history ──────────────────────────────────────────────────────────────────

func (m *shellModel) addHistory(line string) {
	m.history.add(line)
	m.historyIdx = m.history.len()
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history.at(m.historyIdx))
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < m.history.len()-1 {
		m.historyIdx++
		m.input.SetValue(m.history.at(m.historyIdx))
		m.input.CursorEnd()
	} else {
		m.historyIdx = m.history.len()
		m.input.SetValue("")
	}
}
