package ui

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/babyregalo/internal/config"
	"github.com/five82/babyregalo/internal/prefs"
	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/share"
	"github.com/five82/babyregalo/internal/state"
	"github.com/five82/babyregalo/internal/storage"
)

// View represents the current active view.
type View int

const (
	ViewGuest View = iota
	ViewOrganizer
)

// organizerFocus is the focused pane of the organizer view.
type organizerFocus int

const (
	focusBabyName organizerFocus = iota
	focusPhone
	focusList
	focusReservations
	organizerFocusCount
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *state.Session
	Config    *config.Config
	Clipboard share.Clipboard
	ThemeName string
	Filter    string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	session      *state.Session
	shareBaseURL string
	adminPIN     string
	clipboard    share.Clipboard
	prefsPath    string
	keys         keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal

	// Data state
	snapshot registry.Snapshot

	// Guest state
	selectedRow  int
	filter       registry.Filter
	searchInput  textinput.Model
	searchActive bool

	// Organizer state
	babyInput   textinput.Model
	phoneInput  textinput.Model
	listArea    textarea.Model
	focus       organizerFocus
	reservedRow int

	// Transient feedback
	notice     string
	noticeErr  bool
	noticeWarn bool
	noticeSeq  int
	copied     bool
	copySeq    int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	cb := opts.Clipboard
	if cb == nil {
		cb = share.SystemClipboard{}
	}

	m := Model{
		ctx:       ctx,
		session:   opts.Session,
		clipboard: cb,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		filter:    registry.ParseFilter(opts.Filter),
	}
	if opts.Config != nil {
		m.shareBaseURL = opts.Config.ShareBaseURL
		m.adminPIN = opts.Config.AdminPIN
	}
	if m.session != nil {
		m.snapshot = m.session.Snapshot()
	} else {
		m.snapshot = registry.Empty()
	}
	m.initInputs()
	return m
}

func (m *Model) initInputs() {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Buscar regalo"
	search.CharLimit = SettingLimit
	search.Width = 30
	m.searchInput = search

	baby := textinput.New()
	baby.Prompt = ""
	baby.Placeholder = registry.DefaultBabyName
	baby.CharLimit = SettingLimit
	baby.Width = 30
	m.babyInput = baby

	phone := textinput.New()
	phone.Prompt = ""
	phone.Placeholder = "573001234567"
	phone.CharLimit = 20
	phone.Width = 30
	m.phoneInput = phone

	area := textarea.New()
	area.Placeholder = "Un regalo por línea"
	area.ShowLineNumbers = true
	area.CharLimit = 0
	area.MaxHeight = 0
	area.SetWidth(40)
	area.SetHeight(10)
	m.listArea = area
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.snapshot.Settings.BabyName)
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
		m.resizeOrganizer()
		return m, nil

	case mutationMsg:
		return m.handleMutation(msg)

	case claimRequestMsg:
		return m, m.claimCmd(msg.id, msg.guest)

	case pinAcceptedMsg:
		cmd := m.enterOrganizer()
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			log.Printf("copy %s: %v", msg.what, msg.err)
			m.setNotice("No se pudo copiar: "+msg.err.Error(), true)
			return m, m.noticeTimeout()
		}
		m.copied = true
		m.copySeq++
		m.setNotice(msg.what+" copiado", false)
		return m, copyExpireCmd(m.copySeq)

	case copyExpiredMsg:
		if msg.seq == m.copySeq {
			m.copied = false
			m.notice = ""
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
			m.noticeWarn = false
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.currentView == ViewOrganizer {
		return m.handleOrganizerKey(msg)
	}
	if m.searchActive {
		return m.handleSearchInput(msg)
	}
	return m.handleGuestKey(msg)
}

// handleGlobalKey handles keys shared by every non-editing context. The bool
// reports whether the key was consumed.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "?":
		m.showHelp = true
		return nil, true
	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return nil, true
	}
	return nil, false
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Filter: m.filter.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
	m.noticeWarn = false
	m.noticeSeq++
}

// setWarning shows a notice for a change that was kept in memory but not saved.
func (m *Model) setWarning(text string) {
	m.setNotice(text, true)
	m.noticeWarn = true
}

func (m *Model) noticeTimeout() tea.Cmd {
	seq := m.noticeSeq
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// handleMutation installs the result of a persisted change. Results can
// arrive out of order, so the session's current state wins over the one
// carried by msg.
func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setNotice(describeError(msg.err), true)
		return m, m.noticeTimeout()
	}
	m.snapshot = msg.snapshot
	if m.session != nil {
		m.snapshot = m.session.Snapshot()
		msg.persistErr = m.session.LastPersistErr()
	}
	m.clampSelection()
	if m.currentView == ViewOrganizer && msg.resetForm {
		m.fillOrganizerForm()
	}

	if msg.persistErr != nil {
		m.setWarning("Cambios sin guardar: " + describeError(msg.persistErr))
		return m, m.noticeTimeout()
	}
	if msg.notify != "" {
		return m, copyCmd(m.clipboard, msg.notify, "Mensaje de WhatsApp")
	}
	if msg.notice != "" {
		m.setNotice(msg.notice, false)
		return m, m.noticeTimeout()
	}
	return m, nil
}

// describeError maps domain errors onto guest-facing text.
func describeError(err error) string {
	switch {
	case errors.Is(err, state.ErrNotReady):
		return "La lista aún se está cargando"
	case errors.Is(err, storage.ErrQuota):
		return "El almacenamiento está lleno"
	case errors.Is(err, registry.ErrEmptyList):
		return "Agrega al menos un regalo"
	case errors.Is(err, share.ErrEmptyRegistry):
		return "Guarda al menos un regalo antes de compartir"
	default:
		return err.Error()
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewOrganizer:
		b.WriteString(m.renderOrganizer())
	default:
		b.WriteString(m.renderGuest())
	}

	return b.String()
}

// Messages

type mutationMsg struct {
	snapshot   registry.Snapshot
	err        error
	persistErr error
	notice     string
	notify     string // WhatsApp link to copy after a claim
	resetForm  bool
}

type claimRequestMsg struct {
	id    string
	guest string
}

type pinAcceptedMsg struct{}

type copiedMsg struct {
	what string
	err  error
}

type copyExpiredMsg struct{ seq int }

type noticeExpiredMsg struct{ seq int }

// Commands

// applyCmd runs fn against the session off the update loop.
func (m Model) applyCmd(msg mutationMsg, fn func(registry.Snapshot) registry.Snapshot) tea.Cmd {
	sess := m.session
	ctx := m.ctx
	return func() tea.Msg {
		if sess == nil {
			msg.err = state.ErrNotReady
			return msg
		}
		ctx, cancel := context.WithTimeout(ctx, MutationTimeout)
		defer cancel()
		msg.snapshot, msg.err = sess.Apply(ctx, fn)
		msg.persistErr = sess.LastPersistErr()
		return msg
	}
}

func copyCmd(cb share.Clipboard, text, what string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{what: what, err: cb.WriteAll(text)}
	}
}

func copyExpireCmd(seq int) tea.Cmd {
	return tea.Tick(share.CopiedFor, func(time.Time) tea.Msg {
		return copyExpiredMsg{seq: seq}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
