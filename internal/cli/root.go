package cli

import (
	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/config"
	"github.com/cueline/cueline/internal/logging"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cueline",
	Short: "Waveform timeline editor for subtitle cues",
	Long: `Cueline edits subtitle timing against an audio waveform timeline.

A project holds an imported waveform plus a cue collection. Cues can be
nudged against the waveform, split, translated, and exported back to SRT
or WebVTT.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
}
