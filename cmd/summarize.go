package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/edaloom-cli/internal/eda"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
	"github.com/KaramelBytes/edaloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumLoad        loadFlags
	sumEDA         edaFlags
	sumOutDir      string
	sumTableFormat string
	sumFigFormat   string
	sumInteractive bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file> [column...]",
	Short: "Summarize dataset columns as a statistics table plus a figure",
	Long: `Summarize one or more columns of a CSV/TSV, XLSX or SQLite dataset.
Without column arguments every column is summarized. The column type is
inferred unless --type is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := currentConfig()
		df, err := sumLoad.load(args[0])
		if err != nil {
			return err
		}
		opt, err := sumEDA.options(c)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if sumInteractive {
			opt.SetInteraction(eda.Interaction{Interactive: true, Displayer: eda.TerminalDisplayer{Out: out}})
		}
		tableFormat := sumTableFormat
		figFormat := sumFigFormat
		if c != nil {
			if tableFormat == "" {
				tableFormat = c.TableFormat
			}
			if figFormat == "" {
				figFormat = c.FigureFormat
			}
		}
		if figFormat == "" {
			figFormat = "png"
		}

		columns := args[1:]
		if len(columns) == 0 {
			columns = df.Names()
		}
		if sumOutDir != "" {
			if err := utils.EnsureDir(sumOutDir); err != nil {
				return fmt.Errorf("ensure output dir: %w", err)
			}
		}
		var names utils.FileNames
		for _, col := range columns {
			res, err := eda.Summarize(df, col, opt)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", col, err)
			}
			if !sumInteractive {
				fmt.Fprintf(out, "%s (%s)\n", res.Column, res.Kind)
				if err := res.Table.Render(out, summary.Format(tableFormat)); err != nil {
					return err
				}
			}
			if sumOutDir == "" {
				continue
			}
			if err := writeResult(res, filepath.Join(sumOutDir, names.Next(res.Column)), tableFormat, figFormat); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %s summary to %s\n", res.Column, sumOutDir)
		}
		return nil
	},
}

var tableExt = map[summary.Format]string{
	summary.FormatText:     "txt",
	summary.FormatMarkdown: "md",
	"md":                   "md",
	summary.FormatCSV:      "csv",
	summary.FormatJSON:     "json",
}

// writeResult saves the table and figure of res next to base.
func writeResult(res *eda.Result, base, tableFormat, figFormat string) error {
	ext, ok := tableExt[summary.Format(tableFormat)]
	if !ok {
		ext = "txt"
	}
	var buf bytes.Buffer
	if err := res.Table.Render(&buf, summary.Format(tableFormat)); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(base+".table."+ext, buf.Bytes()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if res.Figure == nil {
		return nil
	}
	if err := res.Figure.Save(base + "." + figFormat); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	addLoadFlags(summarizeCmd, &sumLoad)
	addEDAFlags(summarizeCmd, &sumEDA)
	summarizeCmd.Flags().StringVarP(&sumOutDir, "out", "o", "", "directory to write tables and figures")
	summarizeCmd.Flags().StringVar(&sumTableFormat, "table-format", "", "table output: text|markdown|csv|json (default from config)")
	summarizeCmd.Flags().StringVar(&sumFigFormat, "figure-format", "", "figure output: png|svg (default from config)")
	summarizeCmd.Flags().BoolVarP(&sumInteractive, "interactive", "i", false, "print each table and open its figure as soon as it is computed")
}
