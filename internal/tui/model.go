// Package tui is the interactive demo host for the drag controller: a
// bottom-anchored drawer panel dragged with the mouse or driven from the
// keyboard, with animation frames pumped through the bubbletea event loop so
// every controller mutation happens on the single delivery thread.
package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zigzagg16/dragster/internal/config"
	"github.com/zigzagg16/dragster/internal/gesture"
	"github.com/zigzagg16/dragster/pkg/drag"
	"github.com/zigzagg16/dragster/pkg/events"
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// ReloadMsg carries a freshly loaded configuration onto the event thread.
// Send it with Program.Send from the config watcher.
type ReloadMsg struct {
	Config *config.Config
}

// CommandMsg carries a remote open/close request onto the event thread.
// Send it with Program.Send from the bridge.
type CommandMsg struct {
	Action   string // "open" or "close"
	Animated bool
}

// drawerOffset is the bound value the controller writes; the view renders
// the drawer from it.
type drawerOffset struct {
	value float64
}

func (d *drawerOffset) Offset() float64          { return d.value }
func (d *drawerOffset) SetOffset(offset float64) { d.value = offset }

type Model struct {
	controller   *drag.Controller
	animator     *drag.TweenAnimator
	cfg          *config.Config
	bus          *events.EventBus
	controllerID string

	offset  drawerOffset
	tracker gesture.Tracker

	width  int
	height int

	help     help.Model
	keys     keyMap
	showHelp bool

	animating bool
	lastFrame time.Time
}

// NewModel builds the demo model and starts its controller at the closed
// position. tactile may be nil for no feedback; bus may be nil for a fully
// local session.
func NewModel(cfg *config.Config, bus *events.EventBus, tactile drag.TactileSink) (*Model, error) {
	animator := drag.NewTweenAnimator(cfg.Duration())
	animator.Curve = cfg.Spring()

	opts := []drag.Option{drag.WithAnimator(animator)}
	if tactile != nil {
		opts = append(opts, drag.WithTactileSink(tactile))
	}

	m := &Model{
		controller:   drag.New(opts...),
		animator:     animator,
		cfg:          cfg,
		bus:          bus,
		controllerID: uuid.New().String(),
		help:         help.New(),
		keys:         keys,
	}

	var observer drag.Observer
	if bus != nil {
		observer = &events.PublishingObserver{Bus: bus, ControllerID: m.controllerID}
	}
	if err := m.controller.Start(cfg.Drag(), &m.offset, observer); err != nil {
		return nil, err
	}
	return m, nil
}

// ControllerID identifies this model's controller in bus events.
func (m *Model) ControllerID() string {
	return m.controllerID
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case ReloadMsg:
		return m.handleReload(msg.Config)

	case CommandMsg:
		switch msg.Action {
		case "open":
			m.controller.Open(msg.Animated, nil)
		case "close":
			m.controller.Close(msg.Animated, nil)
		default:
			return m, nil
		}
		m.publishSnapStarted()
		return m, m.startFrames()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Open):
		m.controller.Open(true, nil)
		m.publishSnapStarted()
		return m, m.startFrames()

	case key.Matches(msg, m.keys.Close):
		m.controller.Close(true, nil)
		m.publishSnapStarted()
		return m, m.startFrames()

	case key.Matches(msg, m.keys.Toggle):
		if m.controller.Percentage() >= 50 {
			m.controller.Close(true, nil)
		} else {
			m.controller.Open(true, nil)
		}
		m.publishSnapStarted()
		return m, m.startFrames()
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		if !m.tracker.Active() {
			if msg.Y < m.drawerTop() {
				return m, nil
			}
			ev, _ := m.tracker.Press(msg.Y)
			gesture.Dispatch(m.controller, ev)
			m.animating = false
			m.publish(events.DragStarted, nil)
			return m, nil
		}
		// Motion with the button held.
		if ev, ok := m.tracker.Motion(msg.Y); ok {
			gesture.Dispatch(m.controller, ev)
		}

	case tea.MouseMotion:
		if ev, ok := m.tracker.Motion(msg.Y); ok {
			gesture.Dispatch(m.controller, ev)
		}

	case tea.MouseRelease:
		ev, ok := m.tracker.Release()
		if !ok {
			return m, nil
		}
		gesture.Dispatch(m.controller, ev)
		m.publish(events.DragEnded, map[string]interface{}{
			"percentage": m.controller.Percentage(),
		})
		m.publishSnapStarted()
		return m, m.startFrames()
	}

	return m, nil
}

func (m *Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.animating {
		return m, nil
	}

	dt := now.Sub(m.lastFrame)
	if dt <= 0 {
		dt = m.cfg.FrameInterval()
	}
	m.lastFrame = now

	if m.animator.Advance(dt) {
		return m, m.frameCmd()
	}

	m.animating = false
	m.publish(events.SnapCompleted, map[string]interface{}{
		"position":   m.controller.Position(),
		"percentage": m.controller.Percentage(),
	})
	return m, nil
}

func (m *Model) handleReload(cfg *config.Config) (tea.Model, tea.Cmd) {
	if err := m.controller.UpdateConfig(cfg.Drag()); err != nil {
		// The watcher validates before sending; a failure here means the
		// new bounds are incompatible, so keep the old configuration.
		return m, nil
	}
	m.cfg = cfg
	m.animator.Duration = cfg.Duration()
	m.animator.Curve = cfg.Spring()
	m.publish(events.ConfigReloaded, nil)
	return m, nil
}

// startFrames begins pumping animation frames if a transition is in flight.
func (m *Model) startFrames() tea.Cmd {
	if !m.animator.Active() || m.animating {
		return nil
	}
	m.animating = true
	m.lastFrame = time.Now()
	return m.frameCmd()
}

func (m *Model) frameCmd() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) publish(eventType events.EventType, data map[string]interface{}) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(events.Event{Type: eventType, ControllerID: m.controllerID, Data: data})
}

func (m *Model) publishSnapStarted() {
	var target string
	switch m.controller.State() {
	case drag.PhaseSnappingOpen:
		target = "open"
	case drag.PhaseSnappingClosed:
		target = "closed"
	default:
		return
	}
	m.publish(events.SnapStarted, map[string]interface{}{"target": target})
}

// travel is the drawer's full height in rows.
func (m *Model) travel() float64 {
	return math.Abs(m.cfg.Drawer.ClosedPosition - m.cfg.Drawer.OpenPosition)
}

// visibleRows converts the current percentage into rendered drawer rows.
// Overshoot stretches the drawer past its full height; the handle row keeps
// a closed drawer grabbable.
func (m *Model) visibleRows() int {
	rows := int(math.Round(m.travel() * m.controller.Percentage() / 100))
	if max := m.height - 2; rows > max {
		rows = max
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// drawerTop is the first screen row occupied by the drawer.
func (m *Model) drawerTop() int {
	return m.height - m.visibleRows()
}
