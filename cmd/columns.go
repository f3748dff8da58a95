package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var colLoad loadFlags

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List dataset columns with their inferred types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := colLoad.load(args[0])
		if err != nil {
			return err
		}
		profiles, err := dataset.InferFrame(df)
		if err != nil {
			return err
		}
		w := table.NewWriter()
		w.SetStyle(table.StyleLight)
		w.AppendHeader(table.Row{"column", "type", "observed", "missing", "unique"})
		w.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight},
		})
		for _, p := range profiles {
			w.AppendRow(table.Row{p.Name, string(p.Kind), p.Observed, p.Missing, p.Unique})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, w.Render())
		fmt.Fprintf(out, "%d rows, %d columns:", df.Nrow(), df.Ncol())
		for _, kc := range dataset.KindCounts(profiles) {
			fmt.Fprintf(out, " %s=%d", kc.Kind, kc.Count)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	addLoadFlags(columnsCmd, &colLoad)
}
