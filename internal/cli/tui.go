package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/model"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/sample"
)

// Demo canvas bounds in terminal cells.
const (
	minCanvasWidth  = 40
	minCanvasHeight = 10
)

var (
	demoNodeStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	demoConflictStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	demoKeyStyle      = lipgloss.NewStyle().Foreground(colorGray)
)

// DemoModel is the bubbletea model for the interactive tree explorer.
// It keeps the sample parameters, the derived tree, and the current layout
// in sync: every parameter change rebuilds the tree and recomputes the
// layout from scratch.
type DemoModel struct {
	count    int
	seed     uint64
	strategy string

	tree   model.Model
	layout layout.Layout

	width    int
	height   int
	status   string
	statusOK bool
}

// NewDemoModel creates a demo model with an initial sample.
func NewDemoModel(count int, seed uint64, strategy string) DemoModel {
	m := DemoModel{
		count:    sample.ClampCount(count),
		seed:     seed,
		strategy: strategy,
		width:    80,
		height:   24,
	}
	m.rebuild()
	return m
}

// rebuild regenerates the sample, tree and layout from current parameters.
func (m *DemoModel) rebuild() {
	data := sample.Generate(m.count, m.seed)
	m.tree = model.New(data)

	l, err := layout.Build(m.tree.Tree(), m.strategy)
	if err != nil {
		m.status = err.Error()
		m.statusOK = false
		return
	}
	if m.strategy == layout.StrategyGrid {
		l.Conflicts = layout.Conflicts(l.Nodes)
	}
	m.layout = l
}

func (m DemoModel) Init() tea.Cmd {
	return nil
}

func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "-", "h":
			if m.count > sample.MinCount {
				m.count--
				m.status = ""
				m.rebuild()
			}
		case "right", "+", "l":
			if m.count < sample.MaxCount {
				m.count++
				m.status = ""
				m.rebuild()
			}
		case "r":
			m.seed++
			m.status = ""
			m.rebuild()
		case "tab", "t":
			if m.strategy == layout.StrategyGrid {
				m.strategy = layout.StrategyRadial
			} else {
				m.strategy = layout.StrategyGrid
			}
			m.status = ""
			m.rebuild()
		case "s":
			path := fmt.Sprintf("treeviz_%s_%d.svg", m.strategy, m.seed)
			if err := m.saveSVG(path); err != nil {
				m.status = "save failed: " + err.Error()
				m.statusOK = false
			} else {
				m.status = "saved " + path
				m.statusOK = true
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// saveSVG exports the current view using the same renderer as the CLI.
func (m DemoModel) saveSVG(path string) error {
	opts := []render.SVGOption{render.WithStyle(render.StyleLight)}
	if len(m.layout.Conflicts) > 0 {
		opts = append(opts, render.WithConflicts(m.layout.Conflicts))
	}
	return os.WriteFile(path, render.SVG(m.layout, opts...), 0o644)
}

func (m DemoModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("treeviz demo"))
	b.WriteString("  ")
	b.WriteString(demoKeyStyle.Render("←/→ count  r resample  tab strategy  s save svg  q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  count %s  seed %s  strategy %s  nodes %s",
		StyleHighlight.Render(fmt.Sprintf("%d", m.count)),
		StyleValue.Render(fmt.Sprintf("%d", m.seed)),
		StyleHighlight.Render(m.strategy),
		StyleValue.Render(fmt.Sprintf("%d", m.tree.Tree().Size()))))
	if n := len(m.layout.Conflicts); n > 0 {
		b.WriteString("  ")
		b.WriteString(demoConflictStyle.Render(fmt.Sprintf("%d conflicts", n)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderCanvas())
	b.WriteString("\n")

	if m.status != "" {
		style := StyleDim
		if m.statusOK {
			style = StyleSuccess
		}
		b.WriteString("  ")
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// renderCanvas projects node coordinates onto a character grid. Conflicting
// grid cells are drawn in red; all other nodes show their value.
func (m DemoModel) renderCanvas() string {
	w := max(m.width-4, minCanvasWidth)
	h := max(m.height-8, minCanvasHeight)

	if len(m.layout.Nodes) == 0 {
		return "  " + StyleDim.Render("(empty tree)")
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range m.layout.Nodes {
		minX, maxX = math.Min(minX, n.X), math.Max(maxX, n.X)
		minY, maxY = math.Min(minY, n.Y), math.Max(maxY, n.Y)
	}
	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)

	type cell struct {
		text     string
		conflict bool
	}
	canvas := make(map[[2]int]cell)

	conflicted := make(map[layout.Coord]bool, len(m.layout.Conflicts))
	for _, c := range m.layout.Conflicts {
		conflicted[c] = true
	}

	// Values occupy up to two characters, so reserve horizontal room.
	for _, n := range m.layout.Nodes {
		col := int(math.Round((n.X - minX) / spanX * float64(w-3)))
		row := int(math.Round((n.Y - minY) / spanY * float64(h-1)))
		key := [2]int{row, col}
		c := cell{text: fmt.Sprintf("%d", n.Value)}
		if conflicted[layout.Coord{Depth: n.Depth, Slot: n.Slot}] {
			c.conflict = true
		}
		if prev, ok := canvas[key]; ok {
			// Two nodes mapped onto the same character cell.
			c.text = prev.text
			c.conflict = true
		}
		canvas[key] = c
	}

	var b strings.Builder
	for row := 0; row < h; row++ {
		b.WriteString("  ")
		col := 0
		for col < w {
			if c, ok := canvas[[2]int{row, col}]; ok {
				if c.conflict {
					b.WriteString(demoConflictStyle.Render(c.text))
				} else {
					b.WriteString(demoNodeStyle.Render(c.text))
				}
				col += len(c.text)
				continue
			}
			b.WriteByte(' ')
			col++
		}
		b.WriteString("\n")
	}
	return b.String()
}
