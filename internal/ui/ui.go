// Package ui provides the Bubble Tea terminal frontend for the dashboard.
//
// The UI is a pure render collaborator: it draws the engine's ViewModels
// and turns key presses into engine Commands. It holds no domain state of
// its own beyond the cursor, the active tab and the search input.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/app"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/prefs"
)

// View represents the current active tab.
type View int

const (
	ViewCustomers View = iota
	ViewUploads
	ViewEvents
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Engine    *app.Engine
	ThemeName string
	PageSize  int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	engine    *app.Engine
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	vm       app.ViewModel
	haveData bool

	// Customers tab state
	cursor      int // row index within the current page
	searching   bool
	searchInput textinput.Model
	pageSize    int

	// Uploads tab state
	uploadsCursor int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "name, phone or loan id"
	input.CharLimit = 64
	input.Width = 32

	return Model{
		ctx:         ctx,
		engine:      opts.Engine,
		prefsPath:   prefsPath,
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewCustomers,
		searchInput: input,
		pageSize:    opts.PageSize,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		awaitUpdateCmd(m.engine),
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
		return m, nil

	case viewModelMsg:
		m.vm = app.ViewModel(msg)
		m.haveData = true
		m.clampCursor()
		return m, awaitUpdateCmd(m.engine)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) clampCursor() {
	if n := len(m.vm.Rows); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n := len(m.vm.Uploads); m.uploadsCursor >= n {
		m.uploadsCursor = n - 1
	}
	if m.uploadsCursor < 0 {
		m.uploadsCursor = 0
	}
}

// Messages

type viewModelMsg app.ViewModel

// Commands

// awaitUpdateCmd blocks on the engine's update channel and resolves to the
// next render snapshot.
func awaitUpdateCmd(engine *app.Engine) tea.Cmd {
	return func() tea.Msg {
		vm, ok := <-engine.Updates()
		if !ok {
			return nil
		}
		return viewModelMsg(vm)
	}
}

// Frontend adapts the Bubble Tea program to the app.UI interface.
type Frontend struct{}

// Run starts the Bubble Tea program and blocks until exit.
func (Frontend) Run(ctx context.Context, engine *app.Engine, userPrefs prefs.Prefs, prefsPath string) error {
	m := New(Options{
		Context:   ctx,
		Engine:    engine,
		ThemeName: userPrefs.Theme,
		PageSize:  userPrefs.PageSize,
		PrefsPath: prefsPath,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var _ app.UI = Frontend{}
