// match3 is a terminal match-three puzzle with local and SSH play.
//
// Usage:
//
//	match3 list              - List available boards
//	match3 play [board]      - Play a board
//	match3 menu              - Start menu to pick boards interactively
//	match3 serve             - Start SSH server for remote play
//	match3 history [board]   - Show recorded sessions
//	match3 config            - Print the effective game config
//	match3 simulate          - Play random swaps headless and print stats
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.arcade/match3.db)
//	--config <path>     - Use a custom game config YAML
//	--pace <preset>     - Animation pace: relaxed, normal, fast, instant
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPace     string
	flagLogFile  string
	flagLogLevel string

	logFile io.Closer
)

func main() {
	defer closeLog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap pieces and clear lines in your terminal",
	Long: `Match-3 is a terminal puzzle: swap two pieces to line up three or more
of the same kind. Matched pieces explode, the pieces above fall into the
gaps, and new pieces drop in from the top, which may chain into more matches.

Available commands:
  list      - Show all available boards
  play      - Play a board directly
  menu      - Interactive board picker menu
  serve     - Start SSH server for remote play
  history   - View recorded sessions
  config    - Print the effective game config
  simulate  - Play random swaps without a terminal

Examples:
  match3 play
  match3 play match3_tabletop --pace fast
  match3 menu
  match3 serve --ssh :2222
  match3 history`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/match3.db", "Path to session history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", string(config.PaceNormal), "Animation pace: relaxed, normal, fast, instant")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup validates global flags and wires the logger and game settings.
func setup(cmd *cobra.Command, _ []string) error {
	pace := config.PacePreset(strings.ToLower(flagPace))
	switch pace {
	case config.PaceRelaxed, config.PaceNormal, config.PaceFast, config.PaceInstant:
	default:
		return fmt.Errorf("unknown pace %q (want relaxed, normal, fast or instant)", flagPace)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	logger, err := newLogger(cmd.Name() == "serve")
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	tui.SetLogger(logger)
	match3.SetLogger(logger)
	match3.SetConfigPath(flagConfig)
	match3.SetPace(pace)
	return nil
}

// newLogger builds the process logger. The terminal UI owns the screen,
// so logs are dropped unless a file is given or the SSH server is running.
func newLogger(toStderr bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case toStderr:
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "match3",
	}), nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
