// Package tui holds the Bubble Tea programs used by the bootcamp CLI.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/bootcamp/internal/ui"
)

// Option is one selectable entry.
type Option struct {
	Key   string // returned when chosen, also the shortcut shown before the label
	Label string
	Hint  string
}

// optionItem adapts Option to bubbles/list.Item
type optionItem struct{ Option }

func (i optionItem) Title() string       { return i.Label }
func (i optionItem) Description() string { return i.Hint }
func (i optionItem) FilterValue() string { return i.Label }

// Custom delegate to control how options render (single line)
type optionDelegate struct{}

func (d optionDelegate) Height() int                               { return 1 }
func (d optionDelegate) Spacing() int                              { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(optionItem)
	line := fmt.Sprintf("%s. %s", ui.AccentStyle.Render(it.Key), it.Label)
	if it.Hint != "" {
		line += " " + ui.MutedStyle.Render("("+it.Hint+")")
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type chooserModel struct {
	list    list.Model
	options []Option
	chosen  string
	done    bool
}

func newChooser(title string, options []Option) chooserModel {
	items := make([]list.Item, 0, len(options))
	for _, o := range options {
		items = append(items, optionItem{o})
	}
	l := list.New(items, optionDelegate{}, 60, len(options)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle

	choose := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{choose} }

	return chooserModel{list: l, options: options}
}

func (m chooserModel) Init() tea.Cmd { return nil }

func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(optionItem); ok {
				m.chosen = it.Key
			}
			m.done = true
			return m, tea.Quit
		default:
			// shortcut keys pick an option directly
			for _, o := range m.options {
				if msg.String() == o.Key {
					m.chosen = o.Key
					m.done = true
					return m, tea.Quit
				}
			}
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m chooserModel) View() string {
	if m.done {
		return ""
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.TrimRight(m.list.View(), "\n"))
}

// Choose runs the chooser on in/out and returns the chosen option key.
// It returns "" when the user quits without choosing.
func Choose(title string, options []Option, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newChooser(title, options), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(chooserModel)
	if !ok {
		return "", nil
	}
	return fm.chosen, nil
}
