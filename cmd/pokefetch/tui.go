package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avdejs/pokefetch/pkg/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
)

// snapshotMsg carries a list-state transition into the Bubble Tea loop.
type snapshotMsg state.Snapshot

// model renders the list state: spinner while loading, error banner on
// failure, entry list with an artwork dialog otherwise.
type model struct {
	list     *state.ListState
	sub      <-chan state.Snapshot
	unsub    func()
	snapshot state.Snapshot

	spinner    spinner.Model
	cursor     int
	pageSize   int
	showDialog bool
	width      int
	height     int
}

func newModel(list *state.ListState, pageSize int) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	sub, unsub := list.Subscribe()

	return model{
		list:     list,
		sub:      sub,
		unsub:    unsub,
		spinner:  sp,
		pageSize: pageSize,
	}
}

// waitForSnapshot bridges the subscription channel into tea messages.
func waitForSnapshot(sub <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-sub)
	}
}

func (m model) Init() tea.Cmd {
	m.list.Refresh(context.Background())
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.sub))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if m.cursor >= len(m.snapshot.Items) {
			m.cursor = 0
		}
		if len(m.snapshot.Items) == 0 {
			m.showDialog = false
		}
		return m, waitForSnapshot(m.sub)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDialog {
		switch msg.String() {
		case "q", "ctrl+c":
			m.unsub()
			return m, tea.Quit
		default:
			// Any other key closes the dialog
			m.showDialog = false
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.unsub()
		return m, tea.Quit

	case "r":
		m.list.Refresh(context.Background())
		return m, nil

	case "n":
		m.list.SetOffset(m.list.Offset() + m.pageSize)
		m.cursor = 0
		m.list.Refresh(context.Background())
		return m, nil

	case "p":
		m.list.SetOffset(m.list.Offset() - m.pageSize)
		m.cursor = 0
		m.list.Refresh(context.Background())
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.snapshot.Items)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if len(m.snapshot.Items) > 0 {
			m.showDialog = true
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pokefetch"))
	b.WriteString(fmt.Sprintf("  offset %d\n\n", m.list.Offset()))

	switch {
	case m.snapshot.Loading:
		b.WriteString(fmt.Sprintf("%s Loading...\n", m.spinner.View()))

	case m.snapshot.ErrMsg != "":
		b.WriteString(errorStyle.Render(m.snapshot.ErrMsg))
		b.WriteString("\n")

	case len(m.snapshot.Items) == 0:
		b.WriteString("No entries.\n")

	default:
		visible := m.visibleRows()
		start := 0
		if m.cursor >= visible {
			start = m.cursor - visible + 1
		}
		end := start + visible
		if end > len(m.snapshot.Items) {
			end = len(m.snapshot.Items)
		}

		for i := start; i < end; i++ {
			p := m.snapshot.Items[i]
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + p.Name))
			} else {
				b.WriteString("  " + p.Name)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r refresh · n/p page · enter artwork · q quit"))

	if m.showDialog {
		return m.dialogView()
	}

	return b.String()
}

// dialogView renders the artwork dialog for the selected entry.
func (m model) dialogView() string {
	p := m.snapshot.Items[m.cursor]

	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		selectedStyle.Render(p.Name),
		p.ImageURL,
		helpStyle.Render("press any key to close"))

	dialog := dialogStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
	}
	return dialog
}

// visibleRows returns how many list rows fit the terminal.
func (m model) visibleRows() int {
	// Title, blank, blank, help
	reserved := 4
	if m.height > reserved+1 {
		return m.height - reserved
	}
	return 20
}
