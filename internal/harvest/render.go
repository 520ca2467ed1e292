package harvest

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LineRenderer writes plain lines. Stage descriptions are printed as
// "[n/N] desc"; bare counter updates print nothing.
type LineRenderer struct {
	Out io.Writer
}

func (r LineRenderer) Start(int) {}

func (r LineRenderer) Advance(done, total int, desc string) {
	if strings.TrimSpace(desc) == "" {
		return
	}
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", done, total, desc)
}

func (r LineRenderer) Println(line string) {
	fmt.Fprintln(r.Out, line)
}

func (r LineRenderer) Stop() {}

var (
	barDescStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	barMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type advanceMsg struct {
	done  int
	total int
	desc  string
}

type barModel struct {
	bar     progress.Model
	done    int
	total   int
	desc    string
	started time.Time
	now     func() time.Time
}

func (m barModel) Init() tea.Cmd { return nil }

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m.done, m.total = msg.done, msg.total
		if msg.desc != "" {
			m.desc = msg.desc
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(50, msg.Width-40))
	}
	return m, nil
}

func (m barModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	line := fmt.Sprintf("%s %d/%d", m.bar.ViewAs(pct), m.done, m.total)
	if m.desc != "" {
		line = barDescStyle.Render(m.desc) + " " + line
	}
	if eta := m.eta(); eta != "" {
		line += barMutedStyle.Render(" eta ~ " + eta)
	}
	return line + "\n"
}

func (m barModel) eta() string {
	if m.done == 0 || m.done >= m.total {
		return ""
	}
	elapsed := m.now().Sub(m.started).Seconds()
	perUnit := elapsed / float64(m.done)
	return formatETASeconds(perUnit * float64(m.total-m.done))
}

// BarRenderer draws an inline progress bar through a bubbletea program.
// Lines printed through it appear above the bar.
type BarRenderer struct {
	program  *tea.Program
	finished chan struct{}
}

func NewBarRenderer(out io.Writer) *BarRenderer {
	m := barModel{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		started: time.Now(),
		now:     time.Now,
	}
	return &BarRenderer{
		program:  tea.NewProgram(m, tea.WithOutput(out), tea.WithInput(nil)),
		finished: make(chan struct{}),
	}
}

func (r *BarRenderer) Start(total int) {
	go func() {
		defer close(r.finished)
		_, _ = r.program.Run()
	}()
	r.program.Send(advanceMsg{total: total})
}

func (r *BarRenderer) Advance(done, total int, desc string) {
	r.program.Send(advanceMsg{done: done, total: total, desc: desc})
}

func (r *BarRenderer) Println(line string) {
	r.program.Println(line)
}

func (r *BarRenderer) Stop() {
	r.program.Quit()
	<-r.finished
}

func formatETASeconds(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	secs := int64(math.Round(seconds))
	if secs < 60 {
		return "<1m"
	}
	minutes := secs / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	remMinutes := minutes % 60
	if hours < 24 {
		if remMinutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, remMinutes)
	}
	days := hours / 24
	remHours := hours % 24
	if remHours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, remHours)
}
