package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/edaloom-cli/internal/config"
	"github.com/KaramelBytes/edaloom-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Figure style flags (override config if set)
	flagFontSize float64
	flagPalette  string
	flagDPI      int

	// Loaded configuration
	cfg *cfgpkg.Global

	restoreLogger func()
)

var rootCmd = &cobra.Command{
	Use:          "edaloom",
	Short:        "EdaLoom CLI: univariate summaries of dataset columns",
	Long:         `EdaLoom is a CLI tool that summarizes individual dataset columns (discrete, continuous, datetime, text and list-valued) as a statistics table plus a figure.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edaloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().Float64Var(&flagFontSize, "font-size", 0, "base font size for figures (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagPalette, "palette", "", "color palette: tab10|deep|muted|pastel|dark|colorblind (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagDPI, "dpi", 0, "raster resolution for PNG figures (overrides config)")
}

func loadConfig() {
	if restoreLogger != nil {
		restoreLogger()
	}
	restoreLogger = logging.Install(debug)

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("font-size") && flagFontSize > 0 {
		cfg.FontSize = flagFontSize
	}
	if f.Changed("palette") && flagPalette != "" {
		cfg.Palette = flagPalette
	}
	if f.Changed("dpi") && flagDPI > 0 {
		cfg.DPI = flagDPI
	}
}

// currentConfig returns the loaded config, loading it on demand.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
