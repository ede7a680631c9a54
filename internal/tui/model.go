// Package tui renders the security graph in the terminal. The mouse
// drives the same interaction controller the web dashboard uses: drag
// empty space to pan, click nodes to select, scroll to zoom.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"threatlens/internal/domain"
	"threatlens/internal/service"
	"threatlens/internal/viz"
)

// panStep is the camera shift per arrow key press, in cells
const panStep = 5.0

// typeCycle is the node-type filter rotation bound to the f key; the
// empty entry shows everything
var typeCycle = []string{"", "host", "user", "process", "file", "network", "service", "event"}

// Model is the bubbletea model for the graph viewer
type Model struct {
	graphs *service.GraphService
	events chan service.Event

	ctrl   *viz.Controller
	canvas *viz.Canvas
	snap   *domain.Snapshot

	search    textinput.Model
	searching bool
	query     string
	typeIdx   int

	help   help.Model
	keys   keyMap
	width  int
	height int
	status string
}

// snapshotEventMsg carries a service event into the update loop
type snapshotEventMsg service.Event

// New creates a viewer model subscribed to snapshot updates
func New(graphs *service.GraphService, bus *service.EventBus) Model {
	events := make(chan service.Event, 16)
	bus.Subscribe(events)

	ti := textinput.New()
	ti.Placeholder = "node name or id"
	ti.CharLimit = 64
	ti.Width = 32

	return Model{
		graphs: graphs,
		events: events,
		ctrl:   viz.NewController(viz.NewCamera()),
		canvas: viz.NewCanvas(0, 0),
		snap:   graphs.Snapshot(),
		search: ti,
		help:   help.New(),
		keys:   keys,
	}
}

// Init subscribes to snapshot events
func (m Model) Init() tea.Cmd {
	m.ctrl.SetSnapshot(m.snap)
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func waitForEvent(events chan service.Event) tea.Cmd {
	return func() tea.Msg {
		return snapshotEventMsg(<-events)
	}
}

// Update handles window, key, mouse and snapshot events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.canvas = viz.NewCanvas(msg.Width, m.graphHeight())
		return m, nil

	case snapshotEventMsg:
		if msg.Type == service.EventSnapshotUpdated || msg.Type == service.EventSnapshotCleared {
			m.refreshSnapshot()
		}
		if msg.Type == service.EventSourceError {
			m.status = fmt.Sprintf("source error: %v", msg.Payload)
		}
		return m, waitForEvent(m.events)

	case tea.MouseMsg:
		return m.updateMouse(msg), nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.query = m.search.Value()
			m.search.Blur()
			m.refreshSnapshot()
			return m, nil
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			m.query = ""
			m.refreshSnapshot()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	cam := m.ctrl.Camera()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reset):
		cam.Reset()
	case key.Matches(msg, m.keys.Filter):
		m.typeIdx = (m.typeIdx + 1) % len(typeCycle)
		m.refreshSnapshot()
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctrl.Wheel(-1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctrl.Wheel(1)
	case key.Matches(msg, m.keys.Up):
		cam.PanBy(0, panStep)
	case key.Matches(msg, m.keys.Down):
		cam.PanBy(0, -panStep)
	case key.Matches(msg, m.keys.Left):
		cam.PanBy(panStep, 0)
	case key.Matches(msg, m.keys.Right):
		cam.PanBy(-panStep, 0)
	case key.Matches(msg, m.keys.Escape):
		m.ctrl.ClearSelection()
		m.status = ""
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.Wheel(1)
		return m
	case tea.MouseButtonWheelDown:
		m.ctrl.Wheel(-1)
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp(x, y)
		m.status = m.selectionStatus()
	}
	return m
}

func (m Model) selectionStatus() string {
	id := m.ctrl.SelectedID()
	if id == "" {
		return ""
	}
	node := m.snap.NodeByID(id)
	if node == nil {
		return ""
	}
	return fmt.Sprintf("%s %s (risk %.1f)", node.Type, node.Label, node.RiskScore)
}

// refreshSnapshot pulls the latest snapshot, filtered by the active
// search query and type filter, and rebinds the controller to it
func (m *Model) refreshSnapshot() {
	f := viz.Filter{Search: m.query}
	if t := typeCycle[m.typeIdx]; t != "" {
		f.NodeTypes = []string{t}
	}

	if f.Search == "" && len(f.NodeTypes) == 0 {
		m.snap = m.graphs.Snapshot()
	} else {
		snap, _ := m.graphs.View(f)
		m.snap = snap
	}
	m.ctrl.SetSnapshot(m.snap)
	m.status = ""
}

// graphHeight is the canvas height after the status and help rows
func (m Model) graphHeight() int {
	h := m.height - 2
	if h < 0 {
		h = 0
	}
	return h
}
