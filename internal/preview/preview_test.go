package preview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anishpatel/jobsheet/internal/model"
)

func sampleTable() model.Table {
	return model.NewTable([]model.JobListing{
		{Title: "Software Intern", Company: "Acme", Location: "Austin", ContractType: "permanent", Category: "IT Jobs", Posted: "Jan 05, 2024", Link: "https://example.com/1"},
		{Title: "Data Intern", Company: "N/A", Location: "N/A", ContractType: "Unknown", Category: "N/A", Posted: "N/A", Link: "N/A"},
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTable_OpenSelectedLink(t *testing.T) {
	var opened []string
	m := newTableModel("software intern", sampleTable(), func(u string) { opened = append(opened, u) })

	updated, _ := m.Update(key("o"))
	m = updated.(tableModel)

	if len(opened) != 1 || opened[0] != "https://example.com/1" {
		t.Errorf("opened = %v, want the first row's link", opened)
	}
}

func TestTable_SkipsUnavailableLink(t *testing.T) {
	var opened []string
	m := newTableModel("software intern", sampleTable(), func(u string) { opened = append(opened, u) })

	updated, _ := m.Update(key("down"))
	m = updated.(tableModel)
	updated, _ = m.Update(key("enter"))
	m = updated.(tableModel)

	if len(opened) != 0 {
		t.Errorf("opened = %v, want nothing for an N/A link", opened)
	}
}

func TestTable_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := newTableModel("x", sampleTable(), func(string) {})
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestTable_ViewShowsCountAndRows(t *testing.T) {
	m := newTableModel("software intern", sampleTable(), func(string) {})
	view := m.View()
	if !strings.Contains(view, "(2 jobs)") {
		t.Errorf("view missing job count:\n%s", view)
	}
	if !strings.Contains(view, "Software Intern") {
		t.Errorf("view missing first row:\n%s", view)
	}
}

func TestTable_EmptyView(t *testing.T) {
	m := newTableModel("nothing", model.NewTable(nil), func(string) {})
	if !strings.Contains(m.View(), "No jobs matched") {
		t.Errorf("empty view = %q", m.View())
	}
	if m.selectedLink() != "" {
		t.Error("empty table should have no selected link")
	}
}

func TestLoader_FetchDoneQuits(t *testing.T) {
	m := loaderModel{label: "intern", timeout: time.Second}
	want := sampleTable()

	updated, cmd := m.Update(fetchDoneMsg{table: want})
	got := updated.(loaderModel)
	if !got.done || len(got.result) != len(want) {
		t.Errorf("loader state = %+v", got)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if got.View() != "" {
		t.Errorf("finished loader should render nothing, got %q", got.View())
	}
}

func TestLoader_CtrlCCancels(t *testing.T) {
	m := loaderModel{label: "intern", timeout: time.Second}
	updated, _ := m.Update(key("ctrl+c"))
	if err := updated.(loaderModel).err; !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}

func TestLoader_DoFetchAppliesTimeout(t *testing.T) {
	m := loaderModel{
		timeout: 10 * time.Millisecond,
		fetchFn: func(ctx context.Context) (model.Table, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	msg := m.doFetch()().(fetchDoneMsg)
	if !errors.Is(msg.err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", msg.err)
	}
}
