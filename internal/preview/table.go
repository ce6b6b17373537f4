package preview

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anishpatel/jobsheet/internal/model"
)

// linkColumn is the index of the "Link" column in a model.Table row.
const linkColumn = 6

// Per-column display widths, in terminal cells. Link is kept short; the
// status bar shows the full URL of the selected row.
var columnWidths = []int{36, 24, 20, 12, 18, 12, 30}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			Padding(1, 2)
)

type tableModel struct {
	title   string
	table   table.Model
	rows    int
	opener  func(url string)
	lastURL string
	width   int
	height  int
}

func newTableModel(title string, data model.Table, opener func(string)) tableModel {
	cols := make([]table.Column, len(model.Header))
	for i, h := range model.Header {
		cols[i] = table.Column{Title: h, Width: columnWidths[i]}
	}

	var body [][]string
	if len(data) > 1 {
		body = data[1:]
	}
	rows := make([]table.Row, len(body))
	for i, r := range body {
		rows[i] = table.Row(r)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("24")).
		Bold(false)

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
		table.WithStyles(styles),
	)

	return tableModel{
		title:  title,
		table:  t,
		rows:   len(rows),
		opener: opener,
	}
}

func (m tableModel) Init() tea.Cmd {
	return nil
}

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title + status bar + border
		m.table.SetHeight(max(msg.Height-5, 3))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "o", "enter":
			if url := m.selectedLink(); url != "" {
				m.lastURL = url
				m.opener(url)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectedLink returns the Link cell of the highlighted row, or "" when there
// is nothing to open.
func (m tableModel) selectedLink() string {
	row := m.table.SelectedRow()
	if len(row) <= linkColumn {
		return ""
	}
	if link := row[linkColumn]; link != model.NotAvailable {
		return link
	}
	return ""
}

func (m tableModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("%s  (%d jobs)", m.title, m.rows))
	if m.rows == 0 {
		return header + "\n" + emptyStyle.Render("No jobs matched this search.") + "\n" +
			statusBarStyle.Render("q quit")
	}

	status := "↑/↓ move  o/enter open link  q quit"
	if link := m.selectedLink(); link != "" {
		status += "  " + link
	}
	return header + "\n" + tableBorderStyle.Render(m.table.View()) + "\n" + statusBarStyle.Render(status)
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunTable shows data in a full-screen, scrollable table until the user quits.
func RunTable(title string, data model.Table) error {
	m := newTableModel(title, data, openURL)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
