// Package tui provides the terminal board for poolboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/config"
	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/drop"
	"github.com/javiermolinar/poolboard/internal/forms"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/palette"
	"github.com/javiermolinar/poolboard/internal/placement"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/tui/commands"
	"github.com/javiermolinar/poolboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeBoard Mode = iota
	ModePrompt
	ModeHelp
	ModeSummary
)

// initialScale is the zoom the board opens at. One row is 30 minutes.
const initialScale = 0.5

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// resizeState is the bottom-edge drag in progress.
type resizeState struct {
	sessionID   string
	originalEnd int
	startY      float64
	end         int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store     *schedule.Store
	colors    commands.ColorSaver
	config    *config.Config
	log       *zap.Logger
	drags     *drag.Store
	tracker   *drop.Tracker
	committer *placement.Committer
	custom    *palette.Custom
	validator *forms.Validator

	// Theme and styles
	theme      *theme.Theme
	styles     *Styles
	zones      *zone.Manager
	zonePrefix string

	mode        Mode
	prompt      textinput.Model
	showMiniMap bool
	centered    bool

	// Pointer gestures
	dragStart geometry.Point
	pan       *geometry.Point
	resize    *resizeState

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger shared by the drag pipeline.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithCustomColors seeds the colour picker and sets where changes are saved.
func WithCustomColors(colors []string, saver commands.ColorSaver) ModelOption {
	return func(m *Model) {
		m.custom = palette.NewCustom(colors)
		m.colors = saver
	}
}

// New creates a new TUI model over store.
func New(store *schedule.Store, cfg *config.Config, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "/course Bronze 2"
	ti.CharLimit = 256

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)
	ti.TextStyle = styles.PromptInputStyle
	ti.PlaceholderStyle = styles.HintStyle
	ti.PromptStyle = styles.PromptInputStyle

	zones := zone.New()
	m := Model{
		store:       store,
		config:      cfg,
		log:         zap.NewNop(),
		custom:      palette.NewCustom(nil),
		validator:   forms.New(),
		theme:       t,
		styles:      styles,
		zones:       zones,
		zonePrefix:  zones.NewPrefix(),
		mode:        ModeBoard,
		prompt:      ti,
		showMiniMap: true,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.drags = drag.NewStore(cfg.ZoomLimits(), m.log)
	m.drags.UpdateScale(initialScale)
	m.tracker = drop.NewTracker(m.drags, m.log)
	m.committer = placement.NewCommitter(store, cfg.Placement(), m.log)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("poolboard"),
		commands.Status("Drag a course from the bank onto a pool · ? for help"),
	)
}

// Run starts the TUI and blocks until it exits.
func Run(store *schedule.Store, cfg *config.Config, opts ...ModelOption) error {
	model := New(store, cfg, opts...)
	defer model.zones.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

// busy reports whether a pointer gesture owns the board.
func (m Model) busy() bool {
	return m.tracker.State() == drop.Dragging || m.resize != nil
}

// cancelGesture tears down whatever the pointer was doing. It is safe to
// call when nothing is in progress.
func (m *Model) cancelGesture() bool {
	active := m.busy() || m.pan != nil
	m.tracker.Cancel()
	if m.resize != nil {
		m.drags.EndResize()
		m.resize = nil
	}
	m.pan = nil
	return active
}

// fitView centres the board on every pool at the current scale.
func (m *Model) fitView() {
	b := m.boardLayout()
	r, ok := b.canvasUnion()
	if !ok {
		r = geometry.RectAt(m.store.Grid().WhiteboardCenter(), 0, 0)
	}
	vp := m.screenLayout().boardRect()
	m.drags.CenterOn(r, vp.W, vp.H)
}

// centerOnPool brings the i-th pool (0-based) into the middle of the board.
func (m *Model) centerOnPool(i int) bool {
	b := m.boardLayout()
	if i < 0 || i >= len(b.pools) {
		return false
	}
	vp := m.screenLayout().boardRect()
	m.drags.CenterOn(b.pools[i].bounds, vp.W, vp.H)
	return true
}

// boardCenter is the middle of the board in screen units, the focal point
// for keyboard zoom.
func (m Model) boardCenter() geometry.Point {
	return m.screenLayout().boardRect().Center()
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = time.Now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

func (m *Model) setError(err error) tea.Cmd {
	m.log.Debug("tui error", zap.Error(err))
	m.statusMsg = "Error: " + err.Error()
	m.statusErr = true
	m.statusTime = time.Now().Add(errorDuration)
	return commands.ClearStatusAfter(errorDuration)
}

// withStatus sets the status line and returns the model with its clear timer.
func (m Model) withStatus(msg string) (tea.Model, tea.Cmd) {
	cmd := m.setStatus(msg)
	return m, cmd
}

func (m Model) withError(err error) (tea.Model, tea.Cmd) {
	cmd := m.setError(err)
	return m, cmd
}

// saveColors persists the custom colour list when a saver is configured.
func (m Model) saveColors() tea.Cmd {
	if m.colors == nil {
		return nil
	}
	return commands.SaveColors(m.colors, m.custom.Colors())
}
