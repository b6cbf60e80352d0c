package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var (
	flagConfigDefaults   bool
	flagConfigDifficulty string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration reflex would use, as YAML.

The built-in defaults are overlaid with the first file found among
--config, ~/.reflex/configs/reflex.yaml and ./configs/reflex.yaml, then
with REFLEX_* environment variables (use __ between sections, for
example REFLEX_TIMING__CUE_INTERVAL=2s).

Examples:
  reflex config
  reflex config --defaults > ~/.reflex/configs/reflex.yaml
  reflex config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults only")
	configCmd.Flags().StringVar(&flagConfigDifficulty, "difficulty", "", "Apply a difficulty preset: easy, normal, hard")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	cfg, err := loadConfig(flagConfigDifficulty)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
