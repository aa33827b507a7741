package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/carto"
	"github.com/isogrid/isogrid/pkg/pafv"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// frameInterval paces the manual clock driving animations.
const frameInterval = 33 * time.Millisecond

// frameMsg advances the navigation clock by one frame.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// =============================================================================
// ExploreModel - Interactive grid navigation
// =============================================================================

// ExploreModel is the bubbletea model for interactive grid exploration.
// Panning and zooming go through the carto controller; axis changes go
// through the reposition engine so reflow animations run on the shared
// clock.
type ExploreModel struct {
	RowMetrics axistree.Metrics
	ColMetrics axistree.Metrics

	controller *carto.Controller
	engine     *pafv.Engine
	svc        *pafv.Service
	clock      *carto.ManualClock

	axes   []pafv.Axis
	cursor int

	transform carto.Transform
	boundary  carto.BoundaryStatus
	reflowing bool
	progress  float64
	status    string

	width  int
	height int
}

// NewExploreModel wires the model. The controller, engine and service must
// share the given manual clock.
func NewExploreModel(rowM, colM axistree.Metrics, ctrl *carto.Controller, engine *pafv.Engine, svc *pafv.Service, clock *carto.ManualClock) *ExploreModel {
	return &ExploreModel{
		RowMetrics: rowM,
		ColMetrics: colM,
		controller: ctrl,
		engine:     engine,
		svc:        svc,
		clock:      clock,
		axes:       svc.AvailableAxes(),
		transform:  ctrl.Transform(),
		height:     24,
		width:      80,
	}
}

// SetTransform is the controller's OnTransform callback target. It only
// records the value; the next frame message repaints.
func (m *ExploreModel) SetTransform(tr carto.Transform) {
	m.transform = tr
}

// SetBoundary records boundary hits for the status line.
func (m *ExploreModel) SetBoundary(b carto.BoundaryStatus) {
	m.boundary = b
}

// SetReflow records reflow progress for the status line.
func (m *ExploreModel) SetReflow(active bool, progress float64) {
	m.reflowing = active
	m.progress = progress
}

func (m *ExploreModel) Init() tea.Cmd {
	return frameTick()
}

func (m *ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.clock.Tick(frameInterval)
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			m.controller.PanBy(0, m.cellHeight())
		case "down":
			m.controller.PanBy(0, -m.cellHeight())
		case "left":
			m.controller.PanBy(m.cellWidth(), 0)
		case "right":
			m.controller.PanBy(-m.cellWidth(), 0)
		case "+", "=":
			m.controller.ZoomIn()
		case "-":
			m.controller.ZoomOut()
		case "0":
			m.controller.ResetZoom()
			m.controller.ResetPan()
		case "c":
			m.controller.CenterOnGrid()
		case "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "j":
			if m.cursor < len(m.axes)-1 {
				m.cursor++
			}
		case "x", "y", "z":
			m.assignSelected(pafv.Slot(msg.String()))
		case "s":
			if err := m.svc.SwapAxes(pafv.SlotX, pafv.SlotY); err != nil {
				m.status = err.Error()
			} else {
				m.status = "swapped x and y"
			}
		}
	}
	return m, nil
}

// assignSelected drops the highlighted facet onto a slot via the engine, so
// the same no-op and swap rules apply as for pointer drags.
func (m *ExploreModel) assignSelected(slot pafv.Slot) {
	if len(m.axes) == 0 {
		return
	}
	axis := m.axes[m.cursor]
	if err := m.engine.HandleDrop(axis.ID, slot); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s → %s", axis.Label, slot)
}

func (m *ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Isogrid Explorer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows pan  +/- zoom  0 reset  c center  j/k select  x/y/z assign  s swap  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.viewportLine())
	b.WriteString("\n")
	b.WriteString(m.mappingLine())
	b.WriteString("\n\n")
	b.WriteString(m.axesTable())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  " + m.status))
	}

	return b.String()
}

func (m *ExploreModel) viewportLine() string {
	tr := m.transform
	line := fmt.Sprintf("  scale %.2f  offset (%.0f, %.0f)  grid %d×%d leaves",
		tr.K, tr.X, tr.Y, m.RowMetrics.LeafCount, m.ColMetrics.LeafCount)
	if m.boundary.Any() {
		line += "  " + StyleWarning.Render("edge")
	}
	if m.reflowing {
		line += "  " + StyleHighlight.Render(fmt.Sprintf("reflow %3.0f%%", m.progress*100))
	}
	return StyleValue.Render(line)
}

func (m *ExploreModel) mappingLine() string {
	mp := m.svc.Mapping()
	parts := make([]string, 0, len(pafv.Slots))
	for _, s := range pafv.Slots {
		label := "—"
		if a := mp.Get(s); a != nil {
			label = a.Label
		}
		parts = append(parts, fmt.Sprintf("%s: %s", s, label))
	}
	return "  " + StyleHighlight.Render(strings.Join(parts, "   "))
}

func (m *ExploreModel) axesTable() string {
	mp := m.svc.Mapping()
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i, a := range m.axes {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		slot := string(mp.SlotOf(a.Facet))
		if slot == "" {
			slot = "—"
		}
		rows = append(rows, []string{cursor, a.Label, a.LatchDimension, slot})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Facet", "LATCH", "Slot").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(m.axes) {
				return lipgloss.NewStyle()
			}
			if row == m.cursor {
				return listSelectedStyle
			}
			if !m.axes[row].IsEnabled {
				return listDimStyle
			}
			return listNormalStyle
		})

	return t.Render()
}

func (m *ExploreModel) cellWidth() float64 {
	return m.controller.Config().CellWidth
}

func (m *ExploreModel) cellHeight() float64 {
	return m.controller.Config().CellHeight
}
