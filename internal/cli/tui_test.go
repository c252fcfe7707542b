package cli

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/sample"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{}
}

func TestDemoModelCountClamps(t *testing.T) {
	m := NewDemoModel(sample.MinCount, 1, layout.StrategyGrid)

	next, _ := m.Update(keyMsg("left"))
	m = next.(DemoModel)
	if m.count != sample.MinCount {
		t.Errorf("count = %d, should not go below %d", m.count, sample.MinCount)
	}

	m = NewDemoModel(sample.MaxCount, 1, layout.StrategyGrid)
	next, _ = m.Update(keyMsg("right"))
	m = next.(DemoModel)
	if m.count != sample.MaxCount {
		t.Errorf("count = %d, should not exceed %d", m.count, sample.MaxCount)
	}
}

func TestDemoModelCountChangesRebuild(t *testing.T) {
	m := NewDemoModel(10, 42, layout.StrategyGrid)
	before := len(m.layout.Nodes)

	next, _ := m.Update(keyMsg("right"))
	m = next.(DemoModel)
	if m.count != 11 {
		t.Fatalf("count = %d", m.count)
	}
	if len(m.layout.Nodes) < before {
		t.Errorf("layout shrank after growing the sample: %d -> %d", before, len(m.layout.Nodes))
	}
}

func TestDemoModelStrategyToggle(t *testing.T) {
	m := NewDemoModel(15, 42, layout.StrategyGrid)

	next, _ := m.Update(keyMsg("tab"))
	m = next.(DemoModel)
	if m.strategy != layout.StrategyRadial {
		t.Fatalf("strategy = %q", m.strategy)
	}
	if len(m.layout.Conflicts) != 0 {
		t.Error("radial layout must not carry conflicts")
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(DemoModel)
	if m.strategy != layout.StrategyGrid {
		t.Fatalf("strategy = %q after second toggle", m.strategy)
	}
}

func TestDemoModelResample(t *testing.T) {
	m := NewDemoModel(15, 42, layout.StrategyGrid)
	before := m.seed

	next, _ := m.Update(keyMsg("r"))
	m = next.(DemoModel)
	if m.seed == before {
		t.Error("resample did not change the seed")
	}
}

func TestDemoModelView(t *testing.T) {
	m := NewDemoModel(15, 42, layout.StrategyGrid)
	m.width = 100
	m.height = 30

	view := m.View()
	if !strings.Contains(view, "treeviz demo") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "grid") {
		t.Error("view missing strategy")
	}
}

func TestDemoModelSaveSetsStatus(t *testing.T) {
	t.Chdir(t.TempDir())

	m := NewDemoModel(5, 42, layout.StrategyGrid)
	next, _ := m.Update(keyMsg("s"))
	m = next.(DemoModel)

	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q, want save confirmation", m.status)
	}
	if !m.statusOK {
		t.Error("successful save should flag the status as ok")
	}
	path := strings.TrimPrefix(m.status, "saved ")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
	if !strings.Contains(m.View(), m.status) {
		t.Error("view does not show the save status")
	}
}
