package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/prefs"
	"github.com/five82/dnsdeck/internal/resolvex"
	"github.com/five82/dnsdeck/internal/state"
	"github.com/five82/dnsdeck/internal/syncer"
	"github.com/five82/dnsdeck/internal/view"
)

// SnapshotSource provides the published record snapshot.
type SnapshotSource interface {
	Snapshot() state.Snapshot
}

// AlertSource provides the live alerts.
type AlertSource interface {
	Alerts() []notify.Alert
}

// BusySource reports outstanding API calls.
type BusySource interface {
	Count() int
}

// PhaseSource reports whether a sync cycle is running.
type PhaseSource interface {
	Phase() syncer.Phase
}

// Mutations are the operator's write operations.
type Mutations interface {
	Create(ctx context.Context, name string) error
	Update(ctx context.Context, oldName, newName string) error
	Remove(ctx context.Context, name string) error
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       SnapshotSource
	Alerts      AlertSource
	Busy        BusySource
	Phase       PhaseSource
	Sync        syncer.Refresher
	Actions     Mutations
	Confirm     *ConfirmBridge
	Predicate   *view.Predicate
	APIURL      string
	LogPath     string
	RefreshTick time.Duration
	ThemeName   string
	PrefsPath   string

	// Changes signals that the store, the alerts, the busy count or the
	// sync phase moved. When set, the model re-reads state on each signal
	// instead of polling every RefreshTick.
	Changes <-chan struct{}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	src         sources
	changes     <-chan struct{}
	sync        syncer.Refresher
	actions     Mutations
	confirm     *ConfirmBridge
	predicate   *view.Predicate
	apiURL      string
	logPath     string
	prefsPath   string
	refreshTick time.Duration
	keys        keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	alerts   []notify.Alert
	inFlight int
	phase    syncer.Phase

	// Table state
	selectedRow int
	offset      int

	// Filter input
	filtering   bool
	filterInput textinput.Model

	// Dialogs
	modal          Modal
	pendingConfirm *confirmRequest
	showHelp       bool

	spinner spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refreshTick := opts.RefreshTick
	if refreshTick <= 0 {
		refreshTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeList[0].Name
	}

	predicate := opts.Predicate
	if predicate == nil {
		predicate = &view.Predicate{}
	}

	filterInput := textinput.New()
	filterInput.Prompt = "/"
	filterInput.Placeholder = "filter domains"
	filterInput.SetValue(predicate.String())

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx: ctx,
		src: sources{
			store:  opts.Store,
			alerts: opts.Alerts,
			busy:   opts.Busy,
			phase:  opts.Phase,
		},
		changes:     opts.Changes,
		sync:        opts.Sync,
		actions:     opts.Actions,
		confirm:     opts.Confirm,
		predicate:   predicate,
		apiURL:      opts.APIURL,
		logPath:     opts.LogPath,
		prefsPath:   opts.PrefsPath,
		refreshTick: refreshTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		filterInput: filterInput,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	watch := tickCmd(m.refreshTick)
	if m.changes != nil {
		watch = waitChangeCmd(m.ctx, m.changes)
	}
	return tea.Batch(
		watch,
		fetchStateCmd(m.src),
		waitConfirmCmd(m.confirm),
		m.spinner.Tick,
	)
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
		m.clampSelection()
		return m, nil

	case tickMsg:
		return m, tea.Batch(
			fetchStateCmd(m.src),
			tickCmd(m.refreshTick),
		)

	case changeMsg:
		return m, tea.Batch(
			fetchStateCmd(m.src),
			waitChangeCmd(m.ctx, m.changes),
		)

	case stateMsg:
		m.applyState(msg)
		return m, nil

	case mutationDoneMsg:
		// Outcomes are reported through alerts; just pick up the new state.
		return m, fetchStateCmd(m.src)

	case confirmRequestMsg:
		req := confirmRequest(msg)
		if m.modal != nil {
			m.pendingConfirm = &req
			return m, nil
		}
		m.modal = newConfirmModal(req.prompt, req.reply)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.filtering {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m.updateModal(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.predicate.String() != "" {
			m.setFilter("")
			m.savePrefs()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.sync, m.src)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.predicate.String())
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.Add):
		if m.actions == nil {
			return m, nil
		}
		m.modal = newPromptModal(promptAdd, "Add domain", "", "")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		rec, ok := m.selectedRecord()
		if !ok || m.actions == nil {
			return m, nil
		}
		m.modal = newPromptModal(promptEdit, "Rename "+rec.Domain, rec.Domain, rec.Domain)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		rec, ok := m.selectedRecord()
		if !ok || m.actions == nil {
			return m, nil
		}
		name := rec.Domain
		return m, mutateCmd(m.ctx, func(ctx context.Context) error {
			return m.actions.Remove(ctx, name)
		})
	}

	m.handleTableKey(msg)
	return m, nil
}

// handleFilterKey edits the filter. Every keystroke replaces the predicate.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.setFilter("")
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filterInput.Blur()
		m.savePrefs()
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.setFilter(m.filterInput.Value())
	return m, cmd
}

// updateModal routes a message to the open dialog and acts on its result.
func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	m.modal = modal
	if !closed {
		return m, cmd
	}
	m.modal = nil

	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch d := modal.(type) {
	case *confirmModal:
		cmds = append(cmds, waitConfirmCmd(m.confirm))
	case *promptModal:
		if c := m.submitPrompt(d); c != nil {
			cmds = append(cmds, c)
		}
	}

	if m.pendingConfirm != nil {
		req := *m.pendingConfirm
		m.pendingConfirm = nil
		m.modal = newConfirmModal(req.prompt, req.reply)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitPrompt(p *promptModal) tea.Cmd {
	value, ok := p.Submitted()
	if !ok || m.actions == nil {
		return nil
	}
	switch p.kind {
	case promptAdd:
		return mutateCmd(m.ctx, func(ctx context.Context) error {
			return m.actions.Create(ctx, value)
		})
	case promptEdit:
		target := p.target
		return mutateCmd(m.ctx, func(ctx context.Context) error {
			return m.actions.Update(ctx, target, value)
		})
	}
	return nil
}

func (m *Model) applyState(msg stateMsg) {
	m.snapshot = msg.snapshot
	m.alerts = msg.alerts
	m.inFlight = msg.inFlight
	m.phase = msg.phase
	m.clampSelection()
}

func (m *Model) setFilter(text string) {
	selected, _ := m.selectedRecord()
	m.predicate.Set(text)
	m.selectDomain(selected.Domain)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Filter: m.predicate.String()})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	toasts := m.renderAlerts()
	contentHeight := m.height - 2 - len(toasts)
	b.WriteString(m.renderRecords(contentHeight))

	for _, line := range toasts {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// Messages

type tickMsg time.Time

// changeMsg reports a signal on Options.Changes.
type changeMsg struct{}

type stateMsg struct {
	snapshot state.Snapshot
	alerts   []notify.Alert
	inFlight int
	phase    syncer.Phase
}

type mutationDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitChangeCmd blocks until the next change signal. It returns nil once
// the channel is closed or ctx is done, which ends the wait loop.
func waitChangeCmd(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return changeMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// sources groups everything the model reads state from. Any may be nil.
type sources struct {
	store  SnapshotSource
	alerts AlertSource
	busy   BusySource
	phase  PhaseSource
}

func (s sources) read() stateMsg {
	var msg stateMsg
	if s.store != nil {
		msg.snapshot = s.store.Snapshot()
	}
	if s.alerts != nil {
		msg.alerts = s.alerts.Alerts()
	}
	if s.busy != nil {
		msg.inFlight = s.busy.Count()
	}
	if s.phase != nil {
		msg.phase = s.phase.Phase()
	}
	return msg
}

func fetchStateCmd(src sources) tea.Cmd {
	return func() tea.Msg {
		return src.read()
	}
}

func refreshCmd(ctx context.Context, sync syncer.Refresher, src sources) tea.Cmd {
	if sync == nil {
		return nil
	}
	return func() tea.Msg {
		// Failures surface as alerts.
		_ = sync.Refresh(ctx)
		return src.read()
	}
}

func mutateCmd(ctx context.Context, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: fn(ctx)}
	}
}

// selectedRecord returns the record under the cursor in the filtered view.
func (m Model) selectedRecord() (resolvex.Record, bool) {
	records := m.visibleRecords()
	if m.selectedRow < 0 || m.selectedRow >= len(records) {
		return resolvex.Record{}, false
	}
	return records[m.selectedRow], true
}

// Run starts the Bubble Tea program and blocks until the operator quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
