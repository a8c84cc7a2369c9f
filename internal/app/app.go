package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chatter/uinav/internal/bindings"
	"github.com/chatter/uinav/internal/config"
	"github.com/chatter/uinav/internal/layout"
	"github.com/chatter/uinav/internal/logger"
	"github.com/chatter/uinav/internal/nav"
	"github.com/chatter/uinav/internal/rebind"
	"github.com/chatter/uinav/internal/ui"
	"github.com/chatter/uinav/internal/ui/help"
)

// watchDebounce lets a burst of file events settle before reloading.
const watchDebounce = 100 * time.Millisecond

// Model is the main application model
type Model struct {
	// Core state
	version string
	log     *logger.Logger
	keys    KeyMap

	// Screens
	builder           *layout.Builder
	stack             []*layout.Screen
	scroll            map[*layout.Screen]int // first body line shown
	observer          nav.Observer
	allowRemoveIfRoot bool

	// Bindings
	store      *bindings.Store
	inputs     *rebind.Container
	rebinder   *rebind.Rebinder
	cancelKeys []string
	watcher    *bindings.Watcher

	// View state
	showHelp     bool
	statusBar    *help.StatusBar
	floatingHelp *help.FloatingHelp

	// Window size
	width  int
	height int
}

// New creates the application model. It loads the bindings from store and
// opens the configured start screen on top of the layout's root screen.
func New(cfg config.Config, l *layout.Layout, store *bindings.Store, log *logger.Logger, version string) (Model, error) {
	log = log.With("component", "app")

	opts, err := cfg.RebindOptions()
	if err != nil {
		return Model{}, err
	}
	bs, err := store.Load()
	if err != nil {
		return Model{}, err
	}
	inputs, err := rebind.NewContainer(bs, opts)
	if err != nil {
		return Model{}, fmt.Errorf("bindings %s: %w", store.Path(), err)
	}
	start, err := l.Resolve(cfg.Screen)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		version:           version,
		log:               log,
		keys:              NewKeyMap(inputs.Bindings()),
		builder:           layout.NewBuilder(l, log),
		scroll:            make(map[*layout.Screen]int),
		observer:          sessionLog{log: log},
		allowRemoveIfRoot: cfg.Navigation.AllowRemoveIfRoot,
		store:             store,
		inputs:            inputs,
		rebinder:          rebind.NewRebinder(inputs, cfg.Rebind.CancelKeys),
		cancelKeys:        cfg.Rebind.CancelKeys,
		statusBar:         help.NewStatusBar("uinav " + version),
		floatingHelp:      help.NewFloatingHelp(),
	}

	if err := m.push(l.Root()); err != nil {
		return Model{}, err
	}
	if start != l.Root() {
		if err := m.push(start); err != nil {
			return Model{}, err
		}
	}
	return m, nil
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return m.startWatcher()
}

// sessionLog is the navigation observer of every screen.
type sessionLog struct {
	log *logger.Logger
}

func (s sessionLog) OnFocusChanged(from, to int) {
	s.log.Debug("focus changed", "from", from, "to", to)
}

func (s sessionLog) OnSelect(index int) {
	s.log.Debug("element selected", "index", index)
}

func (s sessionLog) OnRebindRejected(r *rebind.Rejection) {
	s.log.Info("rebind rejected", "key", r.Key, "reason", r.Reason.String(),
		"action", r.Slot.Action, "column", r.Slot.Column)
}

// startWatcher starts watching the bindings file for external edits.
func (m Model) startWatcher() tea.Cmd {
	path, log := m.store.Path(), m.log
	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return watcherStartedMsg{err: err}
		}
		watcher, err := bindings.NewWatcher(path, log)
		if err != nil {
			// Don't fail if watcher can't start, just disable reloading
			return watcherStartedMsg{err: err}
		}
		return watcherStartedMsg{watcher: watcher}
	}
}

// waitForChange waits for the bindings file to change
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		time.Sleep(watchDebounce)
		return bindingsChangedMsg{}
	}
}

func (m Model) reloadBindings() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		bs, err := store.Load()
		return bindingsLoadedMsg{bindings: bs, err: err}
	}
}

func (m Model) saveBindings() tea.Cmd {
	store, bs := m.store, m.inputs.Bindings()
	gen := store.Stamp()
	return func() tea.Msg {
		return bindingsSavedMsg{err: store.SaveGeneration(gen, bs)}
	}
}

// Message types
type watcherStartedMsg struct {
	watcher *bindings.Watcher
	err     error
}

type bindingsChangedMsg struct{}

type bindingsLoadedMsg struct {
	bindings []rebind.Binding
	err      error
}

type bindingsSavedMsg struct {
	err error
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		// A rebind in progress takes every key
		if m.rebinder.State() != rebind.StateIdle {
			cmds = append(cmds, m.submitRebindKey(keyName(msg.String())))
			break
		}

		// When help modal is open, only handle help and esc
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		m.statusBar.SetMessage("", false)
		if newModel, cmd := dispatchKey(&m, msg, m.activeBindings()); newModel != nil {
			m = *newModel
			cmds = append(cmds, cmd)
		}

	case tea.MouseClickMsg:
		cmds = append(cmds, m.handleClick(msg.Mouse()))

	case tea.MouseWheelMsg:
		cmds = append(cmds, m.handleWheel(msg.Mouse()))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case watcherStartedMsg:
		if msg.err != nil {
			m.log.Warn("bindings watcher disabled", "err", msg.err)
			break
		}
		m.watcher = msg.watcher
		cmds = append(cmds, m.waitForChange())

	case bindingsChangedMsg:
		cmds = append(cmds, m.reloadBindings(), m.waitForChange())

	case bindingsLoadedMsg:
		m.applyBindings(msg.bindings, msg.err)

	case bindingsSavedMsg:
		if msg.err != nil {
			m.log.Error("saving bindings failed", "err", msg.err)
			m.statusBar.SetMessage(msg.err.Error(), true)
		}
	}

	m.followFocus()
	return m, tea.Batch(cmds...)
}

// contentHeight is the height left for the screen body above the status bar.
func (m *Model) contentHeight() int {
	return max(m.height-1, 0)
}

// followFocus scrolls the top screen so its focused element stays in view.
func (m *Model) followFocus() {
	if m.height == 0 || len(m.stack) == 0 {
		return
	}
	s := m.screen()
	body, zones := ui.RenderScreen(m.screenView())
	z, ok := ui.ZoneOf(zones, s.Session.Current())
	if !ok {
		return
	}
	m.scroll[s] = ui.Follow(m.scroll[s], z, m.contentHeight(), lipgloss.Height(body))
}

// applyBindings installs bindings read back from the file. Reading back our
// own save is a no-op.
func (m *Model) applyBindings(bs []rebind.Binding, err error) {
	if err != nil {
		m.log.Warn("reloading bindings failed", "err", err)
		m.statusBar.SetMessage(err.Error(), true)
		return
	}
	if bindings.Equal(bs, m.inputs.Bindings()) {
		m.log.Debug("bindings file unchanged")
		return
	}

	m.rebinder.Cancel()
	if err := m.inputs.Reset(bs); err != nil {
		m.log.Warn("rejected edited bindings", "err", err)
		m.statusBar.SetMessage(err.Error(), true)
		return
	}
	m.keys = NewKeyMap(m.inputs.Bindings())
	m.log.Info("bindings reloaded", "path", m.store.Path())
	m.statusBar.SetMessage("bindings reloaded", false)
}

func (m *Model) screen() *layout.Screen {
	return m.stack[len(m.stack)-1]
}

// push builds screen name and puts it on top of the stack.
func (m *Model) push(name string) error {
	s, err := m.builder.Build(name, m.inputs, m.observer)
	if err != nil {
		return err
	}
	m.stack = append(m.stack, s)
	m.log.Info("screen opened", "screen", name, "depth", len(m.stack))
	return nil
}

// pop closes the top screen. Closing the root screen quits when allowed.
func (m *Model) pop() tea.Cmd {
	if len(m.stack) > 1 {
		m.log.Info("screen closed", "screen", m.screen().Name)
		delete(m.scroll, m.screen())
		m.stack = m.stack[:len(m.stack)-1]
		return nil
	}
	if m.allowRemoveIfRoot {
		return m.quit()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.Warn("closing watcher", "err", err)
		}
		m.watcher = nil
	}
	return tea.Quit
}

func (m *Model) navigate(d nav.Direction) {
	if _, err := m.screen().Session.Navigate(d); err != nil {
		m.log.Warn("navigation failed", "screen", m.screen().Name, "direction", d.String(), "err", err)
		m.statusBar.SetMessage(err.Error(), true)
	}
}

// activate runs the focused element.
func (m *Model) activate() tea.Cmd {
	s := m.screen()
	item := s.Focused()
	s.Session.Select()

	switch item.Kind {
	case nav.KindInputBox:
		if err := m.rebinder.Begin(item.Slot); err != nil {
			m.statusBar.SetMessage(err.Error(), true)
			return nil
		}
		m.statusBar.SetMessage(fmt.Sprintf("press a key for %s (%s cancels)",
			m.slotName(item.Slot), strings.Join(m.cancelKeys, "/")), false)
		return nil
	case nav.KindRange:
		m.navigate(nav.DirectionRight)
		return nil
	}

	switch item.Action.Kind {
	case layout.ActionGoto:
		if err := m.push(item.Action.Target); err != nil {
			m.log.Error("opening screen failed", "screen", item.Action.Target, "err", err)
			m.statusBar.SetMessage(err.Error(), true)
		}
	case layout.ActionReturn:
		return m.pop()
	case layout.ActionQuit:
		return m.quit()
	case layout.ActionReset:
		if err := m.inputs.Reset(m.store.Defaults()); err != nil {
			m.statusBar.SetMessage(err.Error(), true)
			return nil
		}
		m.keys = NewKeyMap(m.inputs.Bindings())
		m.log.Info("bindings reset to defaults")
		m.statusBar.SetMessage("bindings reset to defaults", false)
		return m.saveBindings()
	}
	return nil
}

// submitRebindKey feeds a key to the rebind in progress.
func (m *Model) submitRebindKey(k keyName) tea.Cmd {
	var (
		outcome rebind.Outcome
		err     error
	)
	slot := m.rebinder.Slot()
	if m.rebinder.State() == rebind.StateAwaitingSwap {
		outcome, err = m.rebinder.ConfirmSwap(key.Matches(k, m.keys.Accept))
	} else {
		outcome, err = m.rebinder.Submit(string(k))
	}

	var rejection *rebind.Rejection
	switch {
	case errors.As(err, &rejection):
		m.screen().Session.RejectRebind(rejection)
		m.statusBar.SetMessage(m.describeRejection(rejection), true)
	case err != nil:
		m.log.Error("rebind failed", "err", err)
		m.statusBar.SetMessage(err.Error(), true)
	case outcome == rebind.OutcomeCancelled:
		m.statusBar.SetMessage("rebind cancelled", false)
	case outcome == rebind.OutcomeSwapPending:
		pending, conflict, _ := m.rebinder.PendingSwap()
		m.statusBar.SetMessage(fmt.Sprintf("%s is bound to %s: %s to swap, any other key to keep",
			pending, m.slotName(conflict), m.keys.Accept.Help().Key), false)
	case outcome == rebind.OutcomeAccepted, outcome == rebind.OutcomeSwapped:
		m.log.Info("rebind "+outcome.String(), "action", slot.Action, "column", slot.Column, "key", string(k))
		m.keys = NewKeyMap(m.inputs.Bindings())
		m.statusBar.SetMessage(fmt.Sprintf("%s bound to %s", m.slotName(slot), string(k)), false)
		return m.saveBindings()
	}
	return nil
}

func (m *Model) slotName(s rebind.Slot) string {
	b, err := m.inputs.Binding(s.Action)
	if err != nil {
		return fmt.Sprintf("action %d", s.Action)
	}
	return fmt.Sprintf("%s [%s]", b.Display, m.inputs.Restriction(s.Column))
}

func (m *Model) describeRejection(r *rebind.Rejection) string {
	msg := fmt.Sprintf("%s: %s", r.Key, r.Reason)
	if r.Key == "" {
		msg = r.Reason.String()
	}
	if r.Conflict != nil {
		msg += " (" + m.slotName(*r.Conflict) + ")"
	}
	return msg
}

// handleClick hovers the clicked element, then runs the action bound to the
// mouse button. An unbound left click activates the element.
func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	k := mouseKey(mouse)
	if m.rebinder.State() != rebind.StateIdle {
		return m.submitRebindKey(k)
	}
	if m.showHelp {
		return nil
	}

	_, zones := ui.RenderScreen(m.screenView())
	idx, hit := nav.Unset, false
	if mouse.Y < m.contentHeight() {
		idx, hit = ui.HitTest(zones, mouse.X, mouse.Y+m.scroll[m.screen()])
	}
	if hit {
		if err := m.screen().Session.Hover(idx); err != nil {
			m.log.Debug("click on inert element", "index", idx, "err", err)
			hit = false
		}
	}

	if newModel, cmd := dispatchKey(m, k, m.activeBindings()); newModel != nil {
		*m = *newModel
		return cmd
	}
	if hit && mouse.Button == tea.MouseLeft {
		return m.activate()
	}
	return nil
}

// handleWheel offers wheel motion to a rebind in progress, otherwise runs the
// action bound to it.
func (m *Model) handleWheel(mouse tea.Mouse) tea.Cmd {
	k := wheelKey(mouse)
	if m.rebinder.State() != rebind.StateIdle {
		return m.submitRebindKey(k)
	}
	if m.showHelp {
		return nil
	}
	if newModel, cmd := dispatchKey(m, k, m.activeBindings()); newModel != nil {
		*m = *newModel
		return cmd
	}
	return nil
}

// Action methods for keybindings

func (m *Model) actionQuit() (Model, tea.Cmd) {
	return *m, m.quit()
}

func (m *Model) actionUp() (Model, tea.Cmd) {
	m.navigate(nav.DirectionUp)
	return *m, nil
}

func (m *Model) actionDown() (Model, tea.Cmd) {
	m.navigate(nav.DirectionDown)
	return *m, nil
}

func (m *Model) actionLeft() (Model, tea.Cmd) {
	m.navigate(nav.DirectionLeft)
	return *m, nil
}

func (m *Model) actionRight() (Model, tea.Cmd) {
	m.navigate(nav.DirectionRight)
	return *m, nil
}

func (m *Model) actionAccept() (Model, tea.Cmd) {
	cmd := m.activate()
	return *m, cmd
}

func (m *Model) actionBack() (Model, tea.Cmd) {
	cmd := m.pop()
	return *m, cmd
}

func (m *Model) actionToggleHelp() (Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	return *m, nil
}

// activeBindings returns the keybindings for dispatch, in match order.
func (m *Model) activeBindings() []ActionBinding {
	return []ActionBinding{
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Up, Category: help.CategoryNavigation, Order: 1},
			Action:      (*Model).actionUp,
		},
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Down, Category: help.CategoryNavigation, Order: 2},
			Action:      (*Model).actionDown,
		},
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Left, Category: help.CategoryNavigation, Order: 3},
			Action:      (*Model).actionLeft,
		},
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Right, Category: help.CategoryNavigation, Order: 4},
			Action:      (*Model).actionRight,
		},
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Accept, Category: help.CategoryActions, Order: 10},
			Action:      (*Model).actionAccept,
		},
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Back, Category: help.CategoryActions, Order: 11},
			Action:      (*Model).actionBack,
		},
		// Help toggle - pinned, always visible
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Help, Category: help.CategoryActions, Order: 99, Pinned: true},
			Action:      (*Model).actionToggleHelp,
		},
		{
			HelpBinding: help.HelpBinding{Binding: m.keys.Quit, Category: help.CategoryActions, Order: 100},
			Action:      (*Model).actionQuit,
		},
	}
}

// activeHelpBindings returns all display bindings for the current context.
func (m *Model) activeHelpBindings() []help.HelpBinding {
	bs := ToHelpBindings(m.activeBindings())
	if len(m.cancelKeys) > 0 {
		bs = append(bs, help.HelpBinding{
			Binding: key.NewBinding(
				key.WithKeys(m.cancelKeys...),
				key.WithHelp(strings.Join(m.cancelKeys, "/"), "cancel a rebind"),
			),
			Category: help.CategoryRebind,
			Order:    1,
		})
	}
	bs = append(bs, help.HelpBinding{
		Binding:  key.NewBinding(key.WithKeys(m.keys.Accept.Keys()...), key.WithHelp(m.keys.Accept.Help().Key, "confirm a swap")),
		Category: help.CategoryRebind,
		Order:    2,
	})
	return bs
}

func (m *Model) rebinding() *ui.Rebinding {
	switch m.rebinder.State() {
	case rebind.StateAwaitingKey:
		return &ui.Rebinding{Slot: m.rebinder.Slot()}
	case rebind.StateAwaitingSwap:
		return &ui.Rebinding{Slot: m.rebinder.Slot(), Swap: true}
	default:
		return nil
	}
}

func (m *Model) screenView() ui.ScreenView {
	return ui.ViewOf(m.screen(), m.inputs, m.rebinding())
}

// View renders the application
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderWithOverlay()
	}

	// Leave room for status bar
	contentHeight := m.contentHeight()
	body, _ := ui.RenderScreen(m.screenView())
	body = ui.Window(body, m.scroll[m.screen()], contentHeight)
	body = lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(contentHeight).Render(body)
	body = lipgloss.PlaceVertical(contentHeight, lipgloss.Top, body)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderWithOverlay() string {
	// Calculate modal size (centered, ~80% of screen)
	modalWidth := m.width * 80 / 100
	modalHeight := m.height * 70 / 100
	if modalWidth < 40 {
		modalWidth = min(40, m.width-4)
	}
	if modalHeight < 10 {
		modalHeight = min(10, m.height-4)
	}

	m.floatingHelp.SetSize(modalWidth, modalHeight)
	m.floatingHelp.SetBindings(m.activeHelpBindings())
	m.floatingHelp.SetFooter(m.keys.Help.Help().Key + " to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.floatingHelp.View())
}

func (m Model) renderStatusBar() string {
	m.statusBar.SetWidth(m.width)
	m.statusBar.SetBindings(ToHelpBindings(m.activeBindings()))
	return ui.StatusBarStyle.Render(m.statusBar.View())
}
