package app

import (
	"context"
	"errors"
	"fmt"
	"lofi/catalog"
	"lofi/config"
	"lofi/effects"
	"lofi/keys"
	"lofi/log"
	"lofi/player"
	"lofi/registry"
	"lofi/ui"
	"lofi/ui/layout"
	"lofi/ui/overlay"
	"lofi/wordgen"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, appState *config.State) error {
	h, err := newHome(ctx, cfg, cat, appState)
	if err != nil {
		return err
	}
	p := tea.NewProgram(h, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateEffects is the state when the effects panel has focus.
	stateEffects
	// stateAddChannel is the state when the add channel form is open.
	stateAddChannel
	// stateEditChannel is the state when the edit channel form is open.
	stateEditChannel
	// stateAddEffect is the state when the add effect form is open.
	stateAddEffect
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateConfirm is the state when a confirmation modal is displayed.
	stateConfirm
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

const (
	syncInterval     = 2 * time.Second
	progressInterval = time.Second
	errDisplayTime   = 3 * time.Second
	effectVolumeStep = 0.1
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	// appState stores every persisted value; the registry, mixer and player
	// each see it through their own storage interface.
	appState *config.State

	// -- Domain --

	registry *registry.Registry
	mixer    *effects.Mixer
	player   *player.Player

	// -- State --

	state state
	// returnState is where a form or dialog goes back to when it closes.
	returnState state
	// editID is the channel the edit form was opened for. Indices can shift
	// under an open form when the state file is synced from disk.
	editID uuid.UUID
	// confirmErr is the error of the last confirmed action.
	confirmErr error
	// ticking is true while a progress tick is scheduled.
	ticking bool

	// -- UI Components --

	list         *ui.List
	nowPlaying   *ui.NowPlaying
	effectsPanel *ui.EffectsPanel
	menu         *ui.Menu
	errBox       *ui.ErrBox
	spinner      spinner.Model
	constraints  layout.Constraints

	formOverlay         *overlay.FormOverlay
	textOverlay         *overlay.TextOverlay
	confirmationOverlay *overlay.ConfirmationOverlay
}

func newHome(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, appState *config.State) (*home, error) {
	reg, err := registry.Open(cat, registry.NewStorage(appState))
	if err != nil {
		return nil, fmt.Errorf("failed to open channel registry: %w", err)
	}

	h := &home{
		ctx:          ctx,
		appConfig:    cfg,
		appState:     appState,
		registry:     reg,
		mixer:        effects.NewMixer(appState),
		player:       player.New(appState, cfg.VolumeStep),
		state:        stateDefault,
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		menu:         ui.NewMenu(),
		errBox:       ui.NewErrBox(),
		list:         ui.NewList(),
		effectsPanel: ui.NewEffectsPanel(),
	}
	h.nowPlaying = ui.NewNowPlaying(&h.spinner)
	h.applyTheme()
	h.channelsChanged()
	h.list.SetCursor(reg.SelectedIndex())

	for _, w := range reg.Warnings() {
		log.InfoLog.Printf("startup repair: %s", w)
	}
	return h, nil
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	c := layout.ComputeConstraints(msg.Width, msg.Height)
	d := layout.ComputeDegradation(c)
	m.constraints = c

	m.list.SetDegradation(d)
	m.nowPlaying.SetDegradation(d)
	m.menu.SetSingleLine(d.SingleLineMenu)

	m.list.SetSize(c.ListWidth, c.ListHeight)
	m.nowPlaying.SetSize(c.PaneWidth, c.PaneHeight)
	m.effectsPanel.SetSize(c.PaneWidth, c.PaneHeight)
	m.menu.SetSize(msg.Width, c.MenuHeight)
	m.errBox.SetSize(int(float32(msg.Width)*0.9), layout.ErrBoxHeight)

	w, _ := layout.ComputeOverlaySize(msg.Width, msg.Height, 60, 16)
	if m.formOverlay != nil {
		m.formOverlay.SetWidth(w)
	}
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(w)
	}
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickSyncCmd)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideErrMsg:
		m.errBox.Clear()
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tickSyncMsg:
		m.syncFromDisk()
		return m, tickSyncCmd
	case progressTickMsg:
		m.ticking = false
		if !m.player.Playing() {
			return m, nil
		}
		m.registry.SetProgress(m.registry.Progress() + progressInterval)
		m.nowPlaying.SetPlayback(m.playback())
		return m, m.scheduleProgress()
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// syncFromDisk picks up changes another process (such as a CLI subcommand)
// wrote to the state file.
func (m *home) syncFromDisk() {
	refreshed, err := m.appState.RefreshFromDisk()
	if err != nil {
		log.WarningLog.Printf("failed to sync from disk: %v", err)
		return
	}
	if !refreshed {
		return
	}
	if err := m.registry.Reload(); err != nil {
		log.WarningLog.Printf("failed to reload channels: %v", err)
	}
	m.mixer.Reload()
	m.applyTheme()
	m.channelsChanged()
	log.InfoLog.Printf("state reloaded from disk")
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
// This is purely visual - it briefly underlines the corresponding menu item.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	var keyMap map[string]keys.KeyName
	switch m.state {
	case stateDefault:
		keyMap = keys.GlobalKeyStringsMap
	case stateEffects:
		keyMap = keys.EffectsKeyStringsMap
	default:
		return nil
	}
	name, ok := keyMap[msg.String()]
	if !ok {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log.InputTrace("key %q in state %d", msg.String(), m.state)
	highlightCmd := m.handleMenuHighlighting(msg)

	switch m.state {
	case stateHelp:
		if m.textOverlay.HandleKeyPress(msg) {
			m.textOverlay = nil
			m.setState(m.returnState)
		}
		return m, nil
	case stateConfirm:
		if m.confirmationOverlay.HandleKeyPress(msg) {
			m.confirmationOverlay = nil
			m.setState(m.returnState)
			m.channelsChanged()
			if err := m.confirmErr; err != nil {
				m.confirmErr = nil
				return m, m.handleError(err)
			}
		}
		return m, nil
	case stateAddChannel, stateEditChannel, stateAddEffect:
		return m.handleFormKeyPress(msg)
	case stateEffects:
		mod, cmd := m.handleEffectsKeyPress(msg)
		return mod, tea.Batch(highlightCmd, cmd)
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m, tea.Quit
	case keys.KeyHelp:
		m.showHelpScreen()
		return m, nil
	case keys.KeyUp:
		m.list.Up()
		return m, highlightCmd
	case keys.KeyDown:
		m.list.Down()
		return m, highlightCmd
	case keys.KeyEnter:
		if _, err := m.registry.Select(m.list.Cursor()); err != nil {
			return m, m.handleError(err)
		}
		m.player.SetPlaying(true)
		m.channelsChanged()
		return m, tea.Batch(highlightCmd, m.scheduleProgress())
	case keys.KeyNext, keys.KeyPrev:
		dir := registry.Next
		if name == keys.KeyPrev {
			dir = registry.Prev
		}
		_, err := m.registry.Advance(dir)
		m.list.SetCursor(m.registry.SelectedIndex())
		m.channelsChanged()
		if err != nil {
			return m, m.handleError(err)
		}
		return m, highlightCmd
	case keys.KeyPlayPause:
		m.player.TogglePlay()
		m.channelsChanged()
		return m, tea.Batch(highlightCmd, m.scheduleProgress())
	case keys.KeyNew:
		m.openChannelForm(stateAddChannel, "Add channel", registry.Draft{})
		return m, nil
	case keys.KeyEdit:
		ch, ok := m.list.CursorChannel()
		if !ok {
			return m, nil
		}
		m.editID = ch.ID
		title := "Edit channel"
		if !ch.IsCustom {
			title = "Edit built-in channel (saved as your own copy)"
		}
		m.openChannelForm(stateEditChannel, title, registry.DraftOf(ch))
		return m, nil
	case keys.KeyDelete:
		return m, tea.Batch(highlightCmd, m.confirmDeleteChannel())
	case keys.KeyCopy:
		ch, ok := m.list.CursorChannel()
		if !ok {
			return m, nil
		}
		if err := copyToClipboard(ch.URL); err != nil {
			return m, m.handleError(fmt.Errorf("failed to copy url: %w", err))
		}
		return m, tea.Batch(highlightCmd, m.showMessage(fmt.Sprintf("copied %s", ch.URL)))
	case keys.KeyVolumeUp, keys.KeyVolumeDown:
		steps := 1
		if name == keys.KeyVolumeDown {
			steps = -1
		}
		err := m.player.AdjustVolume(steps)
		m.channelsChanged()
		if err != nil {
			return m, m.handleError(err)
		}
		return m, highlightCmd
	case keys.KeyMute:
		err := m.player.ToggleMute()
		m.channelsChanged()
		if err != nil {
			return m, m.handleError(err)
		}
		return m, highlightCmd
	case keys.KeyTheme:
		_, err := m.player.CycleTheme()
		m.applyTheme()
		m.channelsChanged()
		if err != nil {
			return m, m.handleError(err)
		}
		return m, highlightCmd
	case keys.KeyEffects:
		m.setState(stateEffects)
		return m, highlightCmd
	case keys.KeyRestore:
		m.confirmAction("[!] Restore defaults?\nThis removes your channels, effects and settings.", m.restoreDefaults)
		return m, nil
	default:
		return m, nil
	}
}

func (m *home) handleEffectsKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.EffectsKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	var err error
	switch name {
	case keys.KeyQuit:
		return m, tea.Quit
	case keys.KeyHelp:
		m.showHelpScreen()
		return m, nil
	case keys.KeyBack:
		m.setState(stateDefault)
		return m, nil
	case keys.KeyUp:
		m.effectsPanel.Up()
		return m, nil
	case keys.KeyDown:
		m.effectsPanel.Down()
		return m, nil
	case keys.KeyNew:
		m.returnState = stateEffects
		m.state = stateAddEffect
		m.menu.SetState(ui.StateForm)
		m.formOverlay = overlay.NewFormOverlay("Add sound effect", []overlay.Field{
			{Label: "Name", Placeholder: "Rain on a tin roof"},
			{Label: "YouTube URL", Placeholder: "https://www.youtube.com/watch?v=..."},
		})
		m.sizeOverlay()
		return m, nil
	}

	e, ok := m.effectsPanel.Selected()
	if !ok {
		return m, nil
	}
	switch name {
	case keys.KeyToggleEffect:
		_, err = m.mixer.Toggle(e.ID)
	case keys.KeyVolumeUp:
		err = m.mixer.SetVolume(e.ID, m.mixer.Volume(e.ID)+effectVolumeStep)
	case keys.KeyVolumeDown:
		err = m.mixer.SetVolume(e.ID, m.mixer.Volume(e.ID)-effectVolumeStep)
	case keys.KeyEffectsVolumeUp:
		err = m.mixer.SetMasterVolume(m.mixer.MasterVolume() + effectVolumeStep)
	case keys.KeyEffectsVolumeDown:
		err = m.mixer.SetMasterVolume(m.mixer.MasterVolume() - effectVolumeStep)
	case keys.KeyDelete:
		if !e.Custom {
			return m, m.handleError(effects.ErrBuiltin)
		}
		m.confirmAction(fmt.Sprintf("[!] Delete effect '%s'?", e.Name), func() error {
			return m.mixer.Delete(e.ID)
		})
		return m, nil
	}
	m.channelsChanged()
	if err != nil {
		return m, m.handleError(err)
	}
	return m, nil
}

func (m *home) handleFormKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.formOverlay.HandleKeyPress(msg) {
		return m, nil
	}

	form := m.formOverlay
	formState := m.state
	m.formOverlay = nil
	m.setState(m.returnState)
	if !form.IsSubmitted() {
		return m, nil
	}

	values := form.Values()
	var err error
	switch formState {
	case stateAddChannel, stateEditChannel:
		draft := registry.Draft{Name: values[0], URL: values[1], Description: values[2], Creator: values[3]}
		var ch registry.Channel
		if formState == stateAddChannel {
			ch, err = m.registry.Add(draft)
		} else {
			var idx int
			if idx, err = m.registry.IndexOf(m.editID); err == nil {
				ch, err = m.registry.Edit(idx, draft)
			}
		}
		if errors.Is(err, registry.ErrValidation) {
			// Keep what the user typed.
			title := "Add channel"
			if formState == stateEditChannel {
				title = "Edit channel"
			}
			m.openChannelForm(formState, title, draft)
			return m, m.handleError(err)
		}
		m.channelsChanged()
		// A failed save still leaves the change in memory.
		if ch.Name != "" {
			m.list.SetCursor(m.indexOf(ch))
		}
	case stateAddEffect:
		_, err = m.mixer.Add(values[0], values[1])
		if errors.Is(err, effects.ErrInvalidURL) || errors.Is(err, effects.ErrMissing) {
			m.state = stateAddEffect
			m.menu.SetState(ui.StateForm)
			m.formOverlay = overlay.NewFormOverlay("Add sound effect", []overlay.Field{
				{Label: "Name", Value: values[0]},
				{Label: "YouTube URL", Value: values[1]},
			})
			m.sizeOverlay()
			return m, m.handleError(err)
		}
		m.channelsChanged()
	}
	if err != nil {
		return m, m.handleError(err)
	}
	return m, nil
}

func (m *home) openChannelForm(s state, title string, d registry.Draft) {
	m.returnState = stateDefault
	m.state = s
	m.menu.SetState(ui.StateForm)
	m.formOverlay = overlay.NewFormOverlay(title, []overlay.Field{
		{Label: "Name", Value: d.Name, Placeholder: wordgen.Generate()},
		{Label: "URL", Value: d.URL, Placeholder: "https://www.youtube.com/watch?v=..."},
		{Label: "Description", Value: d.Description},
		{Label: "Creator", Value: d.Creator},
	})
	m.formOverlay.SetAccent(m.player.Theme().Accent)
	m.sizeOverlay()
}

// confirmDeleteChannel asks before deleting the channel under the cursor.
// With one channel left the dialog is refused outright.
func (m *home) confirmDeleteChannel() tea.Cmd {
	ch, ok := m.list.CursorChannel()
	if !ok {
		return nil
	}
	if m.registry.Len() <= 1 {
		return m.handleError(registry.ErrLastChannel)
	}

	message := fmt.Sprintf("[!] Delete channel '%s'?", ch.Name)
	if ch.HasOriginalIndex() {
		message += "\nThis will hide the default channel."
	}
	m.confirmAction(message, func() error {
		// Resolve again: a sync may have moved or removed the channel.
		idx, err := m.registry.IndexOf(ch.ID)
		if err != nil {
			return fmt.Errorf("channel %q is gone: %w", ch.Name, err)
		}
		_, err = m.registry.Delete(idx)
		return err
	})
	return nil
}

func (m *home) restoreDefaults() error {
	if err := m.appState.Reset(); err != nil {
		return fmt.Errorf("failed to restore defaults: %w", err)
	}
	if err := m.registry.Reload(); err != nil {
		return err
	}
	m.mixer.Reload()
	m.applyTheme()
	m.channelsChanged()
	m.list.SetCursor(m.registry.SelectedIndex())
	log.InfoLog.Printf("restored defaults")
	return nil
}

// indexOf finds ch in the visible list by id, or returns the current cursor.
func (m *home) indexOf(ch registry.Channel) int {
	if i, err := m.registry.IndexOf(ch.ID); err == nil {
		return i
	}
	return m.list.Cursor()
}

// setState switches state and the menu with it.
func (m *home) setState(s state) {
	m.state = s
	switch s {
	case stateEffects:
		m.menu.SetState(ui.StateEffects)
	case stateAddChannel, stateEditChannel, stateAddEffect:
		m.menu.SetState(ui.StateForm)
	case stateHelp, stateConfirm:
		m.menu.SetState(ui.StateDialog)
	default:
		m.menu.SetState(ui.StateDefault)
	}
}

func (m *home) sizeOverlay() {
	if m.constraints.TerminalWidth == 0 {
		return
	}
	w, _ := layout.ComputeOverlaySize(m.constraints.TerminalWidth, m.constraints.TerminalHeight, 60, 16)
	if m.formOverlay != nil {
		m.formOverlay.SetWidth(w)
	}
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(w)
	}
	if m.confirmationOverlay != nil {
		m.confirmationOverlay.SetWidth(min(w, 50))
	}
}

func (m *home) showHelpScreen() {
	m.returnState = m.state
	m.textOverlay = overlay.NewTextOverlay(helpText())
	m.setState(stateHelp)
	m.sizeOverlay()
}

// channelsChanged pushes the registry, mixer and player state into the views.
func (m *home) channelsChanged() {
	m.list.SetChannels(m.registry.Visible(), m.registry.SelectedIndex())
	m.nowPlaying.SetChannel(m.registry.Selected(), m.registry.SelectedIndex())
	m.nowPlaying.SetPlayback(m.playback())

	rows := make([]ui.EffectRow, 0)
	for _, e := range m.mixer.All() {
		rows = append(rows, ui.EffectRow{
			Effect:    e,
			Active:    m.mixer.IsActive(e.ID),
			Volume:    m.mixer.Volume(e.ID),
			Effective: m.mixer.EffectiveVolume(e.ID),
		})
	}
	m.effectsPanel.SetRows(rows, m.mixer.MasterVolume())
}

func (m *home) playback() ui.Playback {
	var active []string
	for _, id := range m.mixer.Active() {
		if e, err := m.mixer.Get(id); err == nil {
			active = append(active, e.Name)
		}
	}
	return ui.Playback{
		Playing:       m.player.Playing(),
		Volume:        m.player.Volume(),
		Progress:      m.registry.Progress(),
		ThemeName:     m.player.Theme().Name,
		ActiveEffects: active,
		EffectsVolume: m.mixer.MasterVolume(),
	}
}

func (m *home) applyTheme() {
	styles := ui.NewStyles(m.player.Theme())
	m.list.SetStyles(styles)
	m.nowPlaying.SetStyles(styles)
	m.effectsPanel.SetStyles(styles)
	m.menu.SetStyles(styles)
	m.errBox.SetStyles(styles)
	m.spinner.Style = lipgloss.NewStyle().Foreground(styles.Theme.Accent)
}

// scheduleProgress starts the progress tick if playing and not already ticking.
func (m *home) scheduleProgress() tea.Cmd {
	if !m.player.Playing() || m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(progressInterval, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

type keyupMsg struct{}

func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

type hideErrMsg struct{}

type tickSyncMsg struct{}

type progressTickMsg struct{}

var tickSyncCmd = func() tea.Msg {
	time.Sleep(syncInterval)
	return tickSyncMsg{}
}

func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errBox.SetError(err)
	return m.hideErrAfter()
}

// showMessage uses the error box for a short notice.
func (m *home) showMessage(text string) tea.Cmd {
	m.errBox.SetError(errors.New(text))
	return m.hideErrAfter()
}

func (m *home) hideErrAfter() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(errDisplayTime):
		}

		return hideErrMsg{}
	}
}

func (m *home) confirmAction(message string, action func() error) {
	m.returnState = m.state
	m.setState(stateConfirm)

	m.confirmationOverlay = overlay.NewConfirmationOverlay(message)
	m.sizeOverlay()

	m.confirmationOverlay.OnConfirm = func() {
		if action != nil {
			m.confirmErr = action()
		}
	}
	m.confirmationOverlay.OnCancel = func() {
		m.confirmErr = nil
	}
}

func (m *home) View() string {
	defer log.Frames().Start()()

	c := m.constraints
	if c.TerminalWidth > 0 && c.ShowMinWarning {
		return lipgloss.Place(c.TerminalWidth, c.TerminalHeight, lipgloss.Center, lipgloss.Center,
			fmt.Sprintf("terminal too small (need at least %dx%d)", layout.MinWidth, layout.MinHeight))
	}

	pane := m.nowPlaying.String()
	if m.state == stateEffects || m.returnState == stateEffects && m.state != stateDefault {
		pane = m.effectsPanel.String()
	}

	var content string
	if c.UseVerticalStack {
		content = lipgloss.JoinVertical(lipgloss.Left, pane, m.list.String())
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.list.String(), pane)
	}

	mainView := lipgloss.JoinVertical(
		lipgloss.Center,
		content,
		m.menu.String(),
		m.errBox.String(),
	)

	switch m.state {
	case stateAddChannel, stateEditChannel, stateAddEffect:
		if m.formOverlay == nil {
			log.ErrorLog.Printf("form overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.formOverlay.Render(), mainView, true)
	case stateHelp:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true)
	case stateConfirm:
		if m.confirmationOverlay == nil {
			log.ErrorLog.Printf("confirmation overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.confirmationOverlay.Render(), mainView, true)
	}

	return mainView
}
