package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used by the terminal models and the SSH server.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// GameModel is the Bubble Tea model that runs one game.
// It is used directly for local play and nested in SessionModel over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	renderer   *ScreenRenderer
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	player     string
	standalone bool // Back quits the program instead of returning to a menu
	now        func() time.Time
	started    time.Time
	saved      bool // Whether the current session has been recorded
	quitting   bool
	backToMenu bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithPlayer sets the name recorded with finished sessions.
func WithPlayer(name string) GameOption {
	return func(m *GameModel) { m.player = name }
}

// WithRenderer sets the screen renderer.
func WithRenderer(r *ScreenRenderer) GameOption {
	return func(m *GameModel) {
		if r != nil {
			m.renderer = r
		}
	}
}

// Standalone makes Back quit the program.
func Standalone() GameOption {
	return func(m *GameModel) { m.standalone = true }
}

// WithClock replaces the clock used to time sessions.
func WithClock(now func() time.Time) GameOption {
	return func(m *GameModel) {
		if now != nil {
			m.now = now
		}
	}
}

// NewGameModel creates a new Bubble Tea model for the given game.
// A nil store disables session history.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     "anonymous",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.renderer == nil {
		m.renderer = NewScreenRenderer(nil)
	}
	m.started = m.now()
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return nextTick(m.config)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveSession()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		m.saveSession()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in place are reset.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	m.saveSession()
	m.restart()
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.saveSession()
		m.config.Seed = time.Now().UnixNano()
		m.restart()
		m.inputFrame.Clear()
		return m, nextTick(m.config)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, nextTick(m.config)
}

// restart resets the game and opens a new session.
func (m *GameModel) restart() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = m.now()
	m.saved = false
}

// saveSession records the current session once, if the player swapped at least once.
func (m *GameModel) saveSession() {
	if m.saved || m.store == nil || m.gameState.Swaps == 0 {
		return
	}
	m.saved = true

	sess := storage.Session{
		GameID:       m.game.ID(),
		Player:       m.player,
		Swaps:        m.gameState.Swaps,
		Passes:       m.gameState.Passes,
		Cleared:      m.gameState.Cleared,
		LongestChain: m.gameState.LongestChain,
		Duration:     m.now().Sub(m.started),
	}
	id, err := m.store.SaveSession(sess)
	if err != nil {
		logger.Error("could not save session", "game", sess.GameID, "player", sess.Player, "err", err)
		return
	}
	logger.Info("session saved", "id", id, "game", sess.GameID, "player", sess.Player,
		"swaps", sess.Swaps, "cleared", sess.Cleared)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Close releases the game if it holds resources.
func (m GameModel) Close() {
	registry.Release(m.game)
}

// Run plays one game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewGameModel(game, store, cfg, WithPlayer(player), Standalone())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
