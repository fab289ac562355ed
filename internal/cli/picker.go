package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/integrations/github"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listCheckedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// errCanceled is returned when the user leaves a prompt with ctrl+c.
var errCanceled = fmt.Errorf("init canceled: %w", context.Canceled)

// runModel runs m full-screen on stderr and returns its final state.
func runModel[M tea.Model](m M) (M, error) {
	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return m, err
	}
	return final.(M), nil
}

// =============================================================================
// PromptModel - Single-line text input
// =============================================================================

// PromptModel asks for one line of text.
type PromptModel struct {
	Label    string
	Input    textinput.Model
	Validate func(string) error
	Err      error
	Done     bool
	Aborted  bool
}

// NewPromptModel creates a prompt pre-filled with value.
func NewPromptModel(label, value string, validate func(string) error) PromptModel {
	in := textinput.New()
	in.Prompt = "› "
	in.SetValue(value)
	in.CharLimit = 200
	in.Focus()
	return PromptModel{Label: label, Input: in, Validate: validate}
}

// Value returns the trimmed input.
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "enter":
			if m.Validate != nil {
				if err := m.Validate(m.Value()); err != nil {
					m.Err = err
					return m, nil
				}
			}
			m.Done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Err = nil
	return m, cmd
}

func (m PromptModel) View() string {
	if m.Done {
		return StyleDim.Render(m.Label) + " " + StyleValue.Render(m.Value()) + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Label))
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(listErrorStyle.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// TechPickerModel - Multi-select with type-to-filter
// =============================================================================

// TechPickerModel selects technologies for one galaxy arm. Typing filters
// the list; the selection keeps the order in which items were picked.
type TechPickerModel struct {
	Title    string
	Options  []string
	Selected []string
	Filter   string
	Cursor   int
	Height   int
	Offset   int
	Hint     string
	Done     bool
	Aborted  bool
}

// NewTechPickerModel creates a picker over options with preselected items
// checked. Preselected items missing from options are added to it.
func NewTechPickerModel(title string, options, preselected []string) TechPickerModel {
	opts := slices.Clone(options)
	for _, p := range preselected {
		if !slices.Contains(opts, p) {
			opts = append(opts, p)
		}
	}
	return TechPickerModel{
		Title:    title,
		Options:  opts,
		Selected: slices.Clone(preselected),
		Height:   12,
	}
}

// Visible returns the options matching the filter.
func (m TechPickerModel) Visible() []string {
	if m.Filter == "" {
		return m.Options
	}
	f := strings.ToLower(m.Filter)
	var out []string
	for _, o := range m.Options {
		if strings.Contains(strings.ToLower(o), f) {
			out = append(out, o)
		}
	}
	return out
}

func (m TechPickerModel) Init() tea.Cmd {
	return nil
}

func (m TechPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Hint = ""
		visible := m.Visible()
		switch msg.String() {
		case "ctrl+c":
			m.Aborted = true
			return m, tea.Quit
		case "esc":
			if m.Filter == "" {
				m.Aborted = true
				return m, tea.Quit
			}
			m.Filter, m.Cursor, m.Offset = "", 0, 0
		case "up", "ctrl+p":
			if m.Cursor > 0 {
				m.Cursor--
				m.Offset = min(m.Offset, m.Cursor)
			}
		case "down", "ctrl+n":
			if m.Cursor < len(visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "tab":
			if m.Cursor < len(visible) {
				m.toggle(visible[m.Cursor])
			}
		case "backspace":
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case "enter":
			if len(m.Selected) == 0 {
				m.Hint = "Select at least one technology."
				return m, nil
			}
			m.Done = true
			return m, tea.Quit
		default:
			if msg.Type == tea.KeyRunes {
				m.Filter += string(msg.Runes)
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *TechPickerModel) toggle(item string) {
	if i := slices.Index(m.Selected, item); i >= 0 {
		m.Selected = slices.Delete(m.Selected, i, i+1)
		return
	}
	m.Selected = append(m.Selected, item)
}

func (m TechPickerModel) View() string {
	if m.Done {
		return StyleDim.Render(m.Title) + " " + StyleValue.Render(strings.Join(m.Selected, ", ")) + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  space toggle  ⏎ confirm"))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("filter: ") + m.Filter)
	b.WriteString("\n\n")

	visible := m.Visible()
	end := min(m.Offset+m.Height, len(visible))
	for i := m.Offset; i < end; i++ {
		item := visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if slices.Contains(m.Selected, item) {
			box = listCheckedStyle.Render("[x]")
		}
		line := cursor + box + " " + item
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no match"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected", len(m.Selected))))
	if m.Hint != "" {
		b.WriteString("  " + listErrorStyle.Render(m.Hint))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// RepoPickerModel - Featured repository selection
// =============================================================================

// RepoPickerModel selects up to Max featured repositories.
type RepoPickerModel struct {
	Repos    []github.Repo
	Selected []int // indexes into Repos, in pick order
	Max      int
	Cursor   int
	Height   int
	Offset   int
	Done     bool
	Aborted  bool
}

// NewRepoPickerModel creates a repo picker. Repos whose full name is in
// preselected start checked.
func NewRepoPickerModel(repos []github.Repo, preselected []string, limit int) RepoPickerModel {
	m := RepoPickerModel{Repos: repos, Max: limit, Height: 12}
	for _, name := range preselected {
		for i, r := range repos {
			if strings.EqualFold(r.FullName, name) && len(m.Selected) < limit {
				m.Selected = append(m.Selected, i)
			}
		}
	}
	return m
}

// Chosen returns the selected repositories in pick order.
func (m RepoPickerModel) Chosen() []github.Repo {
	out := make([]github.Repo, len(m.Selected))
	for i, idx := range m.Selected {
		out[i] = m.Repos[idx]
	}
	return out
}

func (m RepoPickerModel) Init() tea.Cmd {
	return nil
}

func (m RepoPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Aborted = true
			return m, tea.Quit
		case "q", "esc":
			m.Selected = nil
			m.Done = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Offset = min(m.Offset, m.Cursor)
			}
		case "down", "j":
			if m.Cursor < len(m.Repos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Repos) == 0 {
				break
			}
			if i := slices.Index(m.Selected, m.Cursor); i >= 0 {
				m.Selected = slices.Delete(m.Selected, i, i+1)
			} else if len(m.Selected) < m.Max {
				m.Selected = append(m.Selected, m.Cursor)
			}
		case "enter":
			m.Done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m RepoPickerModel) View() string {
	if m.Done {
		names := make([]string, 0, len(m.Selected))
		for _, r := range m.Chosen() {
			names = append(names, r.FullName)
		}
		if len(names) == 0 {
			names = append(names, "none")
		}
		return StyleDim.Render("Featured projects") + " " + StyleValue.Render(strings.Join(names, ", ")) + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Select up to %d featured projects", m.Max)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q skip"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Repos))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Repos[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "  "
		if n := slices.Index(m.Selected, i); n >= 0 {
			check = fmt.Sprintf("%d ", n+1)
		}
		lang := r.Language
		if lang == "" {
			lang = "—"
		}
		desc := runewidth.Truncate(r.Description, 40, "…")
		rows = append(rows, []string{cursor + check, r.FullName, lang, fmt.Sprint(r.Stars), desc})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Lang", "★", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorGray)
			}
			switch {
			case idx == m.Cursor:
				return base.Foreground(colorCyan).Bold(true)
			case slices.Contains(m.Selected, idx):
				return base.Foreground(colorGreen)
			default:
				return base
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d/%d selected", m.Cursor+1, len(m.Repos), len(m.Selected), m.Max)))
	b.WriteString("\n")
	return b.String()
}
