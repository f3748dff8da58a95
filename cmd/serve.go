package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/edaloom-cli/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	srvLoad loadFlags
	srvEDA  edaFlags
	srvAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve column summaries of a dataset over HTTP",
	Long: `Load a dataset once and serve its column summaries:

  GET /api/columns                     inferred types of every column
  GET /api/columns/:name/summary       statistics table as JSON
  GET /api/columns/:name/figure.png    figure (also figure.svg)

The type and palette query parameters override the flags per request.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := currentConfig()
		df, err := srvLoad.load(args[0])
		if err != nil {
			return err
		}
		opt, err := srvEDA.options(c)
		if err != nil {
			return err
		}
		addr := srvAddr
		if addr == "" && c != nil {
			addr = c.ServeAddr
		}
		if addr == "" {
			addr = ":8080"
		}
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s (%d columns) on %s\n", args[0], df.Ncol(), addr)
		return server.NewServer(df, args[0], opt).ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addLoadFlags(serveCmd, &srvLoad)
	addEDAFlags(serveCmd, &srvEDA)
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (default from config, :8080)")
}
