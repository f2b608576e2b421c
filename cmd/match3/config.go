package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config after the search order, MATCH3_* environment
overrides and the pace preset have been applied. The output is valid YAML
and can be saved as a starting point for --config.

Examples:
  match3 config
  match3 config --pace fast > ~/.arcade/configs/match3.yaml
  MATCH3_BOARD_WIDTH=10 match3 config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	mc, err := match3.LoadConfig()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(mc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
