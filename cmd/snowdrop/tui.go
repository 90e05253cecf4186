package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/snowdrop-pm/snowdrop/internal/asset"
	"github.com/snowdrop-pm/snowdrop/internal/release"
)

var errPromptAborted = errors.New("prompt aborted")

func runProgram(ctx context.Context, m tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	return p.Run()
}

// tuiChooser asks the user to pick an asset when the naming scheme matched
// nothing.
type tuiChooser struct {
	in  io.Reader
	out io.Writer
}

func (c tuiChooser) ChooseAsset(ctx context.Context, assets []release.Asset) (release.Asset, error) {
	final, err := runProgram(ctx, newAssetListModel(assets), c.in, c.out)
	if err != nil {
		return release.Asset{}, fmt.Errorf("running asset chooser: %w", err)
	}

	m := final.(*assetListModel)
	chosen, ok := m.selected()
	if !ok {
		return release.Asset{}, asset.ErrSelectionAborted
	}
	return chosen, nil
}

type assetListModel struct {
	assets    []release.Asset
	filtered  []int
	cursor    int
	filter    textinput.Model
	filtering bool
	chosen    int
	height    int
}

func newAssetListModel(assets []release.Asset) *assetListModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 100
	ti.Width = 40

	m := &assetListModel{
		assets: assets,
		filter: ti,
		chosen: -1,
	}
	m.rebuildFiltered()
	return m
}

func (m *assetListModel) Init() tea.Cmd {
	return nil
}

func (m *assetListModel) selected() (release.Asset, bool) {
	if m.chosen < 0 || m.chosen >= len(m.assets) {
		return release.Asset{}, false
	}
	return m.assets[m.chosen], true
}

func (m *assetListModel) rebuildFiltered() {
	query := strings.ToLower(m.filter.Value())

	m.filtered = m.filtered[:0]
	for i, a := range m.assets {
		if query == "" || strings.Contains(strings.ToLower(a.Name), query) {
			m.filtered = append(m.filtered, i)
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m *assetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.rebuildFiltered()
		return m, cmd
	}
	return m, nil
}

func (m *assetListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.chosen = -1
		return m, tea.Quit

	case "esc":
		if m.filtering {
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.rebuildFiltered()
			return m, nil
		}
		m.chosen = -1
		return m, tea.Quit

	case "enter":
		if m.filtering {
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		if len(m.filtered) > 0 {
			m.chosen = m.filtered[m.cursor]
			return m, tea.Quit
		}
		return m, nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.rebuildFiltered()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.chosen = -1
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = max(len(m.filtered)-1, 0)
	}
	return m, nil
}

func (m *assetListModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("No asset matched this platform. Pick one:") + "\n")
	if m.filtering {
		b.WriteString("  " + m.filter.View() + "\n")
	} else {
		b.WriteString(dimStyle.Render("  / filter, enter select, q quit") + "\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString("\n  No matching assets.\n")
		return b.String()
	}

	listHeight := m.height - 3
	if listHeight < 5 {
		listHeight = 5
	}
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := min(start+listHeight, len(m.filtered))

	for i := start; i < end; i++ {
		a := m.assets[m.filtered[i]]
		line := fmt.Sprintf(" %-50s %10s", a.Name, humanize.Bytes(uint64(max(a.Size, 0))))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// confirm asks a yes/no question. Anything but an explicit yes is a no.
func confirm(ctx context.Context, in io.Reader, out io.Writer, question string) (bool, error) {
	final, err := runProgram(ctx, &confirmModel{question: question}, in, out)
	if err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}
	return final.(*confirmModel).answer, nil
}

type confirmModel struct {
	question string
	answer   bool
	done     bool
}

func (m *confirmModel) Init() tea.Cmd {
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.answer = true
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.answer = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m *confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s %s\n", promptStyle.Render("?"), m.question, dimStyle.Render(answer))
	}
	return fmt.Sprintf("%s %s %s ", promptStyle.Render("?"), m.question, dimStyle.Render("[y/N]"))
}

// readPAT shows a masked input that only accepts well-formed tokens.
func readPAT(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	final, err := runProgram(ctx, newPATModel(), in, out)
	if err != nil {
		return "", fmt.Errorf("running PAT prompt: %w", err)
	}

	m := final.(*patModel)
	if m.aborted {
		return "", errPromptAborted
	}
	return m.input.Value(), nil
}

type patModel struct {
	input   textinput.Model
	err     error
	aborted bool
	done    bool
}

func newPATModel() *patModel {
	ti := textinput.New()
	ti.Placeholder = "ghp_..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()
	return &patModel{input: ti}
}

func (m *patModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *patModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.err = validatePAT(m.input.Value())
			if m.err == nil {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m *patModel) View() string {
	if m.done {
		return successStyle.Render("✔") + " Your PAT\n"
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render("?") + " Your PAT " + m.input.View() + "\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("✘ "+m.err.Error()) + "\n")
	}
	return b.String()
}
