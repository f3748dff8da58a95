package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/edaloom-cli/internal/report"
	"github.com/KaramelBytes/edaloom-cli/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	repLoad      loadFlags
	repEDA       edaFlags
	repOutDir    string
	repFigFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report <file> [column...]",
	Short: "Summarize columns into a report directory with figures and a Markdown overview",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c, _ := currentConfig()
		df, err := repLoad.load(path)
		if err != nil {
			return err
		}
		opt, err := repEDA.options(c)
		if err != nil {
			return err
		}
		dir := repOutDir
		if dir == "" {
			root := filepath.Join(".", "reports")
			if c != nil && c.ReportsDir != "" {
				root = c.ReportsDir
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			dir = filepath.Join(root, base+"-"+time.Now().Format("20060102-150405"))
		}
		figFormat := repFigFormat
		if figFormat == "" && c != nil {
			figFormat = c.FigureFormat
		}
		r, err := report.Run(df, path, args[1:], opt, dir, figFormat)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Report %s written to %s (%d columns)\n", r.ID, r.RootDir(), len(r.Columns))
		if n := r.Failed(); n > 0 {
			fmt.Fprintf(out, "⚠ %d column(s) could not be summarized; see summary.md\n", n)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Show the columns recorded in a report directory",
	Long:  "Show a report given its directory or any file inside it, such as a figure.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := utils.FindUp(args[0], "report.json")
		if err != nil {
			return err
		}
		r, err := report.LoadReport(dir)
		if err != nil {
			return err
		}
		w := table.NewWriter()
		w.SetStyle(table.StyleLight)
		w.SetTitle(fmt.Sprintf("%s (%s)", filepath.Base(r.Source), r.ID))
		w.AppendHeader(table.Row{"column", "type", "figure", "status"})
		for _, e := range r.Columns {
			status := "✓"
			if e.Error != "" {
				status = "⚠ " + e.Error
			}
			w.AppendRow(table.Row{e.Column, e.Kind, e.Figure, status})
		}
		fmt.Fprintln(cmd.OutOrStdout(), w.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportShowCmd)
	addLoadFlags(reportCmd, &repLoad)
	addEDAFlags(reportCmd, &repEDA)
	reportCmd.Flags().StringVarP(&repOutDir, "out", "o", "", "report directory (default <reports_dir>/<name>-<timestamp>)")
	reportCmd.Flags().StringVar(&repFigFormat, "figure-format", "", "figure output: png|svg (default from config)")
}
