package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/edaloom-cli/internal/config"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set EdaLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "font_size: %g\n", c.FontSize)
		fmt.Fprintf(out, "palette: %s\n", c.Palette)
		fmt.Fprintf(out, "dpi: %d\n", c.DPI)
		if c.FigWidth > 0 {
			fmt.Fprintf(out, "fig_width: %g\n", c.FigWidth)
		}
		if c.FigHeight > 0 {
			fmt.Fprintf(out, "fig_height: %g\n", c.FigHeight)
		}
		fmt.Fprintf(out, "table_format: %s\n", c.TableFormat)
		fmt.Fprintf(out, "figure_format: %s\n", c.FigureFormat)
		fmt.Fprintf(out, "reports_dir: %s\n", c.ReportsDir)
		if c.MaxRows > 0 {
			fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		}
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(out, "max_levels: %d\n", c.MaxLevels)
		fmt.Fprintf(out, "top_ngrams: %d\n", c.TopNgrams)
		fmt.Fprintf(out, "top_entries: %d\n", c.TopEntries)
		fmt.Fprintf(out, "auto_freq_min_buckets: %d\n", c.AutoFreqMinBuckets)
		fmt.Fprintf(out, "auto_freq_max_buckets: %d\n", c.AutoFreqMaxBuckets)
		fmt.Fprintf(out, "serve_addr: %s\n", c.ServeAddr)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := validateConfigValue(key, val); err != nil {
			return err
		}
		if err := c.Set(key, val); err != nil {
			return fmt.Errorf("%w (keys: %v)", err, cfgpkg.Keys)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func validateConfigValue(key, val string) error {
	switch key {
	case "palette":
		st := plots.DefaultStyle()
		st.Palette = val
		if err := st.Validate(); err != nil {
			return err
		}
	case "table_format":
		switch summary.Format(val) {
		case summary.FormatText, summary.FormatMarkdown, summary.FormatCSV, summary.FormatJSON:
		default:
			return fmt.Errorf("invalid table_format: %s (use text|markdown|csv|json)", val)
		}
	case "figure_format":
		if val != "png" && val != "svg" {
			return fmt.Errorf("invalid figure_format: %s (use png|svg)", val)
		}
	case "fig_width", "fig_height":
		if f, err := strconv.ParseFloat(val, 64); err != nil || f < 0 {
			return fmt.Errorf("invalid %s: %s (use inches, 0 for the per-type default)", key, val)
		}
	case "auto_freq_min_buckets", "auto_freq_max_buckets":
		if n, err := strconv.Atoi(val); err != nil || n < 1 {
			return fmt.Errorf("invalid %s: %s (use a positive integer)", key, val)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
