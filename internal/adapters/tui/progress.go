package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"layerfill/internal/adapters/tui/styles"
)

const (
	minBarWidth = 20
	maxBarWidth = 60
)

// ProgressModel renders import progress fed by a channel of percentages.
// The program quits when the channel is closed.
type ProgressModel struct {
	updates  <-chan int
	bar      progress.Model
	title    string
	total    int
	done     int
	percent  int
	started  time.Time
	quitting bool
}

type updateMsg int

type doneMsg struct{}

// NewProgressModel creates a model for an import of total images
func NewProgressModel(title string, total int, updates <-chan int) ProgressModel {
	return ProgressModel{
		updates: updates,
		bar: progress.New(
			progress.WithGradient(styles.GradientStart, styles.GradientEnd),
			progress.WithWidth(40),
		),
		title:   title,
		total:   total,
		started: time.Now(),
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.done++
		m.percent = int(msg)
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(maxBarWidth, max(minBarWidth, msg.Width-10))
		return m, nil
	case tea.KeyMsg:
		// Imports cannot be interrupted halfway; only ctrl+c detaches the view
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		styles.Title.Render(m.title),
		styles.Label.Render(fmt.Sprintf("Images: %d/%d", m.done, m.total)) +
			styles.MutedText.Render(fmt.Sprintf("  elapsed: %s", elapsed)),
		m.bar.ViewAs(float64(m.percent) / 100),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Percent returns the last reported percentage
func (m ProgressModel) Percent() int {
	return m.percent
}

func listenForUpdates(updates <-chan int) tea.Cmd {
	return func() tea.Msg {
		percent, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(percent)
	}
}
