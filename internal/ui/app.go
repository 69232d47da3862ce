// Package ui provides a Bubble Tea-based TUI for gantry.
package ui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/printbed/gantry/internal/ams"
	"github.com/printbed/gantry/internal/control"
	"github.com/printbed/gantry/internal/farmd"
	"github.com/printbed/gantry/internal/feed"
	"github.com/printbed/gantry/internal/prefs"
	"github.com/printbed/gantry/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewFleet View = iota
	ViewControl
	ViewAMS
)

// Step sizes the control panel cycles through.
var (
	jogSteps       = []float64{0.1, 1, 10} // millimeters
	extrudeLengths = []int{1, 5, 10}       // millimeters
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Client         *farmd.Client
	Store          *state.Store
	Feed           *feed.Feed
	PollTick       time.Duration
	ThemeName      string
	PrefsPath      string
	VersionWarning string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx            context.Context
	client         *farmd.Client
	store          *state.Store
	feed           *feed.Feed
	prefsPath      string
	pollTick       time.Duration
	versionWarning string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	spin        spinner.Model

	// Data state
	snapshot state.Snapshot
	routing  ams.Routing
	tracker  *ams.Tracker

	// Fleet state
	fleetRow int

	// Control state
	stepIdx    int  // index into jogSteps
	lengthIdx  int  // index into extrudeLengths
	cmdPending bool // a device command submission is still in flight

	// AMS state
	slotCursor int // index into the flattened slot list

	// Confirmation gate
	gate control.Gate

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	events := opts.Feed
	if events == nil {
		events = feed.New(feed.DefaultCapacity)
	}

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	return Model{
		ctx:            ctx,
		client:         opts.Client,
		store:          opts.Store,
		feed:           events,
		prefsPath:      prefsPath,
		pollTick:       pollTick,
		versionWarning: opts.VersionWarning,
		theme:          GetTheme(themeName),
		currentView:    ViewFleet,
		spin:           spin,
		tracker:        ams.NewTracker(),
		stepIdx:        1, // 1mm
		lengthIdx:      1, // 5mm
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		m.spin.Tick,
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.syncDerived()
		return m, nil

	case settleTickMsg:
		// The deferred refresh after a nozzle switch.
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case cmdResultMsg:
		return m.handleCmdResult(msg)

	case amsResultMsg:
		return m.handleAMSResult(msg)

	case extruderSelectedMsg:
		return m.handleExtruderSelected(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	// The confirmation modal takes over the screen until answered
	if _, _, ok := m.gate.Pending(); ok {
		return m.renderConfirm()
	}

	return m.renderMain()
}

// syncDerived refreshes the state layers that hang off a snapshot: the
// operation tracker and the unit routing. The tracker only sees telemetry
// from a reachable printer so a zeroed status can never seed it.
func (m *Model) syncDerived() {
	if m.snapshot.HasStatus && m.snapshot.Status.Online {
		m.tracker.Observe(m.snapshot.Status.Stage, m.snapshot.Status.TrayNow)
	}
	m.routing = ams.Route(m.snapshot.Status.Units, m.snapshot.Status.ExtruderMap, m.snapshot.Status.Extruders)
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if n := len(m.snapshot.Printers); n == 0 {
		m.fleetRow = 0
	} else if m.fleetRow >= n {
		m.fleetRow = n - 1
	}
	if n := len(slotRefs(m.displayUnits())); n == 0 {
		m.slotCursor = 0
	} else if m.slotCursor >= n {
		m.slotCursor = n - 1
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// A pending confirmation swallows everything except approve/deny
	if _, _, ok := m.gate.Pending(); ok {
		return m.handleConfirmKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "Q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "tab":
		m.cycleView()
		return m, nil

	case "q":
		m.currentView = ViewFleet
		return m, nil

	case "c":
		m.currentView = ViewControl
		return m, nil

	case "a":
		m.currentView = ViewAMS
		return m, nil

	case "esc":
		m.currentView = ViewFleet
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewFleet:
		return m.handleFleetKey(msg)
	case ViewControl:
		return m.handleControlKey(msg)
	case ViewAMS:
		return m.handleAMSKey(msg)
	}

	return m, nil
}

// cycleView advances Fleet → Control → AMS → Fleet.
func (m *Model) cycleView() {
	switch m.currentView {
	case ViewFleet:
		m.currentView = ViewControl
	case ViewControl:
		m.currentView = ViewAMS
	case ViewAMS:
		m.currentView = ViewFleet
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Fetch latest snapshot
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// handleCmdResult folds in the outcome of a gated command. A confirmation
// request parks the command and opens the modal; anything else lands in the
// feed.
func (m Model) handleCmdResult(msg cmdResultMsg) (tea.Model, tea.Cmd) {
	m.cmdPending = false
	if ce, ok := farmd.AsConfirmation(msg.err); ok && msg.cmd.Do != nil {
		if m.gate.Park(msg.cmd, ce.Confirmation) {
			m.feed.Add(msg.cmd.Label + ": confirmation required")
			return m, nil
		}
		m.feed.AddError(msg.cmd.Label + ": another confirmation is pending")
		return m, nil
	}
	if msg.err != nil {
		m.feed.AddError(msg.cmd.Label + ": " + msg.err.Error())
		return m, nil
	}
	m.feed.Add(msg.cmd.Label)
	return m, nil
}

// handleAMSResult settles a filament operation submission against the
// tracker: acks arm the operation card, failures drop the optimistic
// marker.
func (m Model) handleAMSResult(msg amsResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.kind != ams.OpNone {
			m.tracker.Fail()
		}
		m.feed.AddError(msg.verb + ": " + msg.err.Error())
		return m, nil
	}

	switch msg.kind {
	case ams.OpLoad:
		m.tracker.AckLoad()
	case ams.OpUnload:
		m.tracker.AckUnload()
	}
	m.feed.Add(msg.verb)
	return m, nil
}

// handleExtruderSelected reports a nozzle switch and schedules the deferred
// status refresh; the controller reports the old nozzle for a moment.
func (m Model) handleExtruderSelected(msg extruderSelectedMsg) (tea.Model, tea.Cmd) {
	m.cmdPending = false
	if msg.err != nil {
		m.feed.AddError(nozzleName(msg.extruder) + " nozzle: " + msg.err.Error())
		return m, nil
	}
	m.feed.Add("switched to " + nozzleName(msg.extruder) + " nozzle")
	return m, settleCmd()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + printer status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())
	b.WriteString("\n")

	// Activity feed strip
	b.WriteString(m.renderFeed())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewFleet:
		return m.renderFleet()
	case ViewControl:
		return m.renderControl()
	case ViewAMS:
		return m.renderAMS()
	default:
		return ""
	}
}

// commander binds command construction to the current target printer.
func (m Model) commander() *control.Commander {
	target := ""
	if m.store != nil {
		target = m.store.Target()
	}
	return control.NewCommander(m.client, target)
}

// requireReady reports whether device commands may be issued right now.
func (m Model) requireReady() (bool, string) {
	if m.snapshot.IsOffline() {
		return false, "farmd is unreachable"
	}
	if !m.snapshot.HasStatus || !m.snapshot.Status.Online {
		return false, "printer is offline"
	}
	if m.snapshot.Status.State == farmd.StateRunning {
		return false, "printer is printing; controls locked"
	}
	return true, ""
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// settleTickMsg fires after the nozzle-switch settle delay.
type settleTickMsg struct{}

// cmdResultMsg carries the outcome of a gated command submission.
type cmdResultMsg struct {
	cmd control.Command
	err error
}

// amsResultMsg carries the outcome of a filament operation submission.
type amsResultMsg struct {
	kind ams.OpKind // OpNone for RFID re-scans
	verb string
	err  error
}

// extruderSelectedMsg carries the outcome of a nozzle switch.
type extruderSelectedMsg struct {
	extruder int
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func settleCmd() tea.Cmd {
	return tea.Tick(control.ExtruderSettle, func(time.Time) tea.Msg {
		return settleTickMsg{}
	})
}

func issueCmd(ctx context.Context, cmd control.Command) tea.Cmd {
	return func() tea.Msg {
		return cmdResultMsg{cmd: cmd, err: cmd.Do(ctx, "")}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if os.Getenv("GANTRY_DEBUG") != "" {
		f, err := tea.LogToFile("gantry-debug.log", "gantry")
		if err == nil {
			defer f.Close()
		}
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
