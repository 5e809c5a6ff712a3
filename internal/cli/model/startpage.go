// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/cli/styles"
	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/url"
	"github.com/bnema/newtab/internal/logging"
	"github.com/bnema/newtab/internal/ui/searchbar"
)

// maxPageNotes is how many notes the page shows before "view all".
const maxPageNotes = 2

// shortcutAreaWidth is the width the shortcut grid is aligned within.
const shortcutAreaWidth = 80

type focusArea int

const (
	focusSearch focusArea = iota
	focusShortcuts
)

// StartPageConfig holds the dependencies of the start page.
type StartPageConfig struct {
	Settings    *usecase.SettingsStore
	Shortcuts   *usecase.ManageShortcutsUseCase
	Suggestions searchbar.Fetcher
	Search      *usecase.SubmitSearchUseCase
	// Navigator opens shortcut tiles.
	Navigator port.Navigator
	Debounce  time.Duration
	Now       func() time.Time
}

// StartPageModel is the terminal rendition of the new tab page.
type StartPageModel struct {
	// UI components
	input   textinput.Model
	help    help.Model
	keys    styles.StartPageKeyMap
	confirm *styles.ConfirmModel

	// State
	settings  entity.Settings
	shortcuts []entity.Shortcut
	search    searchbar.Snapshot
	focus     focusArea
	tile      int
	now       time.Time
	tickID    int
	status    string
	showHelp  bool
	width     int
	height    int
	err       error

	// Dependencies
	ctx           context.Context
	cfg           StartPageConfig
	theme         *styles.Theme
	ctrl          *searchbar.Controller
	searchChanged chan struct{}
	settingsMoved chan struct{}
	done          chan struct{}
	closeOnce     *sync.Once
	unsubscribe   func()
}

// NewStartPageModel creates the start page. Close must be called once the
// program exits.
func NewStartPageModel(ctx context.Context, cfg StartPageConfig) StartPageModel {
	ctx = logging.WithComponent(ctx, "startpage")
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating start page model")

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	settings := cfg.Settings.Get()
	theme := styles.NewTheme(settings)

	input := styles.NewSearchInput(theme)
	input.Focus()

	searchChanged := make(chan struct{}, 1)
	settingsMoved := make(chan struct{}, 1)

	m := StartPageModel{
		input:         input,
		help:          styles.NewStyledHelp(theme),
		keys:          styles.DefaultStartPageKeyMap(),
		settings:      settings,
		now:           cfg.Now(),
		width:         80,
		height:        24,
		ctx:           ctx,
		cfg:           cfg,
		theme:         theme,
		searchChanged: searchChanged,
		settingsMoved: settingsMoved,
		done:          make(chan struct{}),
		closeOnce:     &sync.Once{},
	}

	m.ctrl = searchbar.NewController(ctx, cfg.Suggestions, cfg.Search, cfg.Settings, searchbar.Options{
		Debounce: cfg.Debounce,
		OnChange: func(searchbar.Snapshot) { signal(searchChanged) },
	})
	m.search = m.ctrl.Snapshot()
	m.unsubscribe = cfg.Settings.Subscribe(func(entity.Settings) { signal(settingsMoved) })
	return m
}

// signal wakes a waiter without blocking; pending wake-ups coalesce.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the search controller and the settings subscription.
func (m StartPageModel) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.unsubscribe()
		m.ctrl.Close()
	})
}

// Init implements tea.Model.
func (m StartPageModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadShortcuts,
		m.tick(),
		m.waitFor(m.searchChanged, searchChangedMsg{}),
		m.waitFor(m.settingsMoved, settingsChangedMsg{}),
	)
}

// tickMsg repaints the clock. id identifies the tick chain that sent it.
type tickMsg struct {
	id  int
	now time.Time
}

// searchChangedMsg is sent when the search controller changed state.
type searchChangedMsg struct{}

// settingsChangedMsg is sent when the settings document changed.
type settingsChangedMsg struct{}

// shortcutsLoadedMsg is sent when the shortcut list is loaded.
type shortcutsLoadedMsg struct {
	shortcuts []entity.Shortcut
}

// submittedMsg is sent when a search bar submission finished.
type submittedMsg struct {
	nav url.Navigation
	ok  bool
	err error
}

// shortcutOpenedMsg is sent when a shortcut tile was opened.
type shortcutOpenedMsg struct {
	err error
}

// shortcutDeletedMsg is sent when a shortcut was deleted.
type shortcutDeletedMsg struct {
	err error
}

func (m StartPageModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Every(clockInterval(m.settings.Clock), func(t time.Time) tea.Msg {
		return tickMsg{id: id, now: t}
	})
}

func (m StartPageModel) waitFor(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return msg
		case <-m.done:
			return nil
		}
	}
}

func (m StartPageModel) loadShortcuts() tea.Msg {
	shortcuts := m.cfg.Shortcuts.List(m.ctx)
	logging.FromContext(m.ctx).Debug().Int("count", len(shortcuts)).Msg("loaded shortcuts")
	return shortcutsLoadedMsg{shortcuts: shortcuts}
}

func (m StartPageModel) submit() tea.Msg {
	nav, ok, err := m.ctrl.Submit()
	return submittedMsg{nav: nav, ok: ok, err: err}
}

func (m StartPageModel) openShortcut(sc entity.Shortcut) tea.Cmd {
	return func() tea.Msg {
		err := m.cfg.Navigator.Navigate(m.ctx, url.Navigation{
			URL:    url.Normalize(sc.URL),
			Target: url.TargetCurrentTab,
		})
		return shortcutOpenedMsg{err: err}
	}
}

func (m StartPageModel) deleteShortcut(id string) tea.Cmd {
	return func() tea.Msg {
		return shortcutDeletedMsg{err: m.cfg.Shortcuts.Delete(m.ctx, id)}
	}
}

func (m StartPageModel) toggleTheme() tea.Msg {
	mode := entity.ThemeDark
	if m.settings.Theme.Mode == entity.ThemeDark {
		mode = entity.ThemeLight
	}
	theme := m.settings.Theme
	theme.Mode = mode
	m.cfg.Settings.Update(m.ctx, entity.SettingsPatch{Theme: &theme})
	return nil
}

// Update implements tea.Model.
func (m StartPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.confirm != nil {
		return m.handleConfirm(keyMsg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = min(60, max(20, msg.Width-10))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && len(m.search.Suggestions) > 0 {
			m.ctrl.ClickOutside()
			m.search = m.ctrl.Snapshot()
		}
		return m, nil

	case tickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		m.now = msg.now
		return m, m.tick()

	case searchChangedMsg:
		m.search = m.ctrl.Snapshot()
		return m, m.waitFor(m.searchChanged, searchChangedMsg{})

	case settingsChangedMsg:
		prevTick := m.tickID
		m = m.applySettings()
		return m, tea.Batch(m.waitFor(m.settingsMoved, settingsChangedMsg{}), m.restartTick(prevTick))

	case shortcutsLoadedMsg:
		m.shortcuts = msg.shortcuts
		m.tile = min(m.tile, max(0, len(m.shortcuts)-1))
		if len(m.shortcuts) == 0 && m.focus == focusShortcuts {
			m.focusSearch()
		}
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg)

	case shortcutOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, tea.Quit

	case shortcutDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Shortcut deleted"
		return m, m.loadShortcuts
	}

	return m, nil
}

// applySettings picks up a changed settings document: theme, clock rate and
// widget visibility.
func (m StartPageModel) applySettings() StartPageModel {
	prev := m.settings
	m.settings = m.cfg.Settings.Get()
	m.theme = styles.NewTheme(m.settings)
	m.help = styles.NewStyledHelp(m.theme)

	value, focused := m.input.Value(), m.input.Focused()
	m.input = styles.NewSearchInput(m.theme)
	m.input.SetValue(value)
	if focused {
		m.input.Focus()
	}

	if !m.settings.WidgetVisibility.Shortcuts && m.focus == focusShortcuts {
		m.focusSearch()
	}
	if clockInterval(prev.Clock) != clockInterval(m.settings.Clock) {
		m.tickID++
	}
	m.now = m.cfg.Now()
	return m
}

// restartTick starts a new tick chain when the clock rate changed.
func (m StartPageModel) restartTick(prevID int) tea.Cmd {
	if prevID == m.tickID {
		return nil
	}
	return m.tick()
}

func (m StartPageModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.ToggleTheme):
		return m, m.toggleTheme
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusSearch && m.shortcutsVisible() && len(m.shortcuts) > 0 {
			m.focus = focusShortcuts
			m.input.Blur()
			m.ctrl.ClickOutside()
			m.search = m.ctrl.Snapshot()
		} else {
			m.focusSearch()
		}
		return m, nil
	}

	if m.focus == focusShortcuts {
		return m.handleShortcutKeys(msg)
	}
	return m.handleSearchKeys(msg)
}

func (m *StartPageModel) focusSearch() {
	m.focus = focusSearch
	m.input.Focus()
}

func (m StartPageModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ctrl.MoveUp()
		m.search = m.ctrl.Snapshot()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.ctrl.MoveDown()
		m.search = m.ctrl.Snapshot()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m, m.submit
	case key.Matches(msg, m.keys.Dismiss):
		if len(m.search.Suggestions) > 0 {
			m.ctrl.Escape()
		} else {
			m.input.SetValue("")
			m.ctrl.SetQuery("")
		}
		m.search = m.ctrl.Snapshot()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.status = ""
		m.ctrl.SetQuery(after)
		m.search = m.ctrl.Snapshot()
	}
	return m, cmd
}

func (m StartPageModel) handleShortcutKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.shortcuts)
	if n == 0 {
		m.focusSearch()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.tile = (m.tile - 1 + n) % n
	case key.Matches(msg, m.keys.Right):
		m.tile = (m.tile + 1) % n
	case key.Matches(msg, m.keys.Open):
		return m, m.openShortcut(m.shortcuts[m.tile])
	case key.Matches(msg, m.keys.Delete):
		confirm := styles.NewConfirm(m.theme, fmt.Sprintf("Delete shortcut %q?", m.shortcuts[m.tile].Name))
		m.confirm = &confirm
	case key.Matches(msg, m.keys.Dismiss):
		m.focusSearch()
	}
	return m, nil
}

func (m StartPageModel) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !confirm.Done() {
		return m, cmd
	}

	m.confirm = nil
	if confirm.Result() && m.tile < len(m.shortcuts) {
		return m, m.deleteShortcut(m.shortcuts[m.tile].ID)
	}
	return m, nil
}

func (m StartPageModel) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.search = m.ctrl.Snapshot()
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	if !msg.ok {
		return m, nil
	}

	m.input.SetValue(m.search.Query)
	m.input.CursorEnd()
	if msg.nav.Target == url.TargetCurrentTab {
		return m, tea.Quit
	}
	m.status = "Opened in a new tab"
	return m, nil
}

func (m StartPageModel) shortcutsVisible() bool {
	return m.settings.WidgetVisibility.Shortcuts
}

// View implements tea.Model.
func (m StartPageModel) View() string {
	var sections []string

	vis := m.settings.WidgetVisibility
	if vis.Clock {
		sections = append(sections, m.renderClock())
	}
	if vis.SearchBar {
		sections = append(sections, m.renderSearch())
	}
	if vis.Shortcuts && len(m.shortcuts) > 0 {
		sections = append(sections, m.renderShortcuts())
	}
	if vis.QuickNotes && len(m.settings.Notes) > 0 {
		sections = append(sections, m.renderNotes())
	}
	if m.confirm != nil {
		sections = append(sections, m.confirm.View())
	}
	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(m.theme.Background))
}

func (m StartPageModel) renderClock() string {
	timeLine, dateLine := ClockLines(m.now, m.settings.Clock)

	var lines []string
	if timeLine != "" {
		lines = append(lines, m.theme.Clock.Render(timeLine))
	}
	if dateLine != "" {
		lines = append(lines, m.theme.ClockDate.Render(dateLine))
	}
	return lipgloss.NewStyle().MarginBottom(1).Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m StartPageModel) renderSearch() string {
	box := m.theme.InputBox(m.input.View(), m.focus == focusSearch)
	if len(m.search.Suggestions) == 0 {
		return lipgloss.NewStyle().MarginBottom(1).Render(box)
	}

	rows := make([]string, 0, len(m.search.Suggestions))
	for i, s := range m.search.Suggestions {
		if i == m.search.Selected {
			rows = append(rows, m.theme.ListItemSelected.Render(s))
			continue
		}
		rows = append(rows, m.theme.ListItem.Render(s))
	}
	list := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(lipgloss.Width(box) - 2).
		Render(strings.Join(rows, "\n"))

	return lipgloss.NewStyle().MarginBottom(1).Render(lipgloss.JoinVertical(lipgloss.Left, box, list))
}

func (m StartPageModel) renderShortcuts() string {
	titles := m.settings.WidgetVisibility.ShowTitles
	tiles := make([]string, 0, len(m.shortcuts))
	for i, sc := range m.shortcuts {
		selected := m.focus == focusShortcuts && i == m.tile
		tiles = append(tiles, m.theme.Tile(selected).Render(tileLabel(sc, titles)))
	}

	rows := wrapTiles(tiles, max(1, m.width-4))
	grid := lipgloss.JoinVertical(alignPosition(m.settings.Shortcuts.Alignment), rows...)

	width := max(lipgloss.Width(grid), min(m.width, shortcutAreaWidth))
	return lipgloss.NewStyle().MarginBottom(1).Render(
		lipgloss.PlaceHorizontal(width, alignPosition(m.settings.Shortcuts.Alignment), grid),
	)
}

// tileLabel is the initial of the shortcut as an icon, with the name under it
// when titles are shown.
func tileLabel(sc entity.Shortcut, titles bool) string {
	icon := "?"
	if r := []rune(sc.Name); len(r) > 0 {
		icon = strings.ToUpper(string(r[0]))
	}
	if !titles {
		return icon
	}
	return icon + "\n" + truncate(sc.Name, 12)
}

// wrapTiles joins tiles into rows no wider than width.
func wrapTiles(tiles []string, width int) []string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, t := range tiles {
		w := lipgloss.Width(t)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, t)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return rows
}

func alignPosition(a entity.Alignment) lipgloss.Position {
	switch a {
	case entity.AlignLeft:
		return lipgloss.Left
	case entity.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}

func (m StartPageModel) renderNotes() string {
	notes := m.settings.Notes
	shown := notes[:min(len(notes), maxPageNotes)]

	cards := make([]string, 0, len(shown))
	for _, n := range shown {
		body := lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Title.Render(truncate(n.Title, 28)),
			m.theme.Subtle.Render(firstLines(n.Content, 3, 28)),
		)
		cards = append(cards, m.theme.Box.Width(32).Render(body))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if len(notes) > maxPageNotes {
		out = lipgloss.JoinVertical(lipgloss.Center, out,
			m.theme.Subtle.Render(fmt.Sprintf("View all (%d) with `newtab notes list`", len(notes))))
	}
	return out
}

func (m StartPageModel) renderFooter() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, m.theme.ErrorStyle.Render(m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, m.theme.SuccessStyle.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func firstLines(s string, lines, width int) string {
	parts := strings.Split(strings.TrimSpace(s), "\n")
	if len(parts) > lines {
		parts = append(parts[:lines-1], "…")
	}
	for i, p := range parts {
		parts[i] = truncate(p, width)
	}
	return strings.Join(parts, "\n")
}
