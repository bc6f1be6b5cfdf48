package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// LogLine is one entry of the activity log.
type LogLine struct {
	Time    time.Time
	Level   string // "info", "warn", "error", "success"
	Source  string // wizard phase or "market"
	Message string
}

// LogStream is a scrollable activity log that follows new lines until the
// user scrolls up.
type LogStream struct {
	lines      []LogLine
	viewport   viewport.Model
	autoScroll bool
	maxLines   int
}

// NewLogStream creates a LogStream with the given dimensions.
func NewLogStream(width, height int) LogStream {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle().Background(styles.BgPanel)
	return LogStream{viewport: vp, autoScroll: true, maxLines: 200}
}

// Update scrolls the log. "G" jumps to the newest line.
func (l LogStream) Update(msg tea.Msg) (LogStream, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "G" {
		l.autoScroll = true
		l.viewport.GotoBottom()
		return l, nil
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	l.autoScroll = l.viewport.AtBottom()
	return l, cmd
}

// SetSize resizes the viewport.
func (l *LogStream) SetSize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
	l.viewport.SetContent(l.renderLines())
}

// Len reports the number of retained lines.
func (l LogStream) Len() int { return len(l.lines) }

// View returns the titled viewport.
func (l LogStream) View() string {
	title := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true).Render("Activity")
	if !l.autoScroll {
		title += lipgloss.NewStyle().Foreground(styles.StatusWarn).Render(" (paused, G to follow)")
	}
	return title + "\n" + l.viewport.View()
}

// AddLine appends a line, dropping the oldest beyond the retention limit.
func (l *LogStream) AddLine(line LogLine) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.maxLines; over > 0 {
		l.lines = l.lines[over:]
	}

	l.viewport.SetContent(l.renderLines())
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

func levelColor(level string) lipgloss.Color {
	switch level {
	case "warn":
		return styles.StatusWarn
	case "error":
		return styles.StatusError
	case "success":
		return styles.StatusOK
	default:
		return styles.TextSecondary
	}
}

func (l *LogStream) renderLines() string {
	var b strings.Builder
	for _, line := range l.lines {
		color := levelColor(line.Level)
		b.WriteString(styles.Dim(line.Time.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.AccentSecondary).Render(fmt.Sprintf("%-9s", line.Source)))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(line.Message))
		b.WriteString("\n")
	}
	return b.String()
}
