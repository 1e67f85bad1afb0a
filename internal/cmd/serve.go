package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vishwajitvm/tracenest/internal/controller"
	"github.com/vishwajitvm/tracenest/internal/server"
	"github.com/vishwajitvm/tracenest/internal/source"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive web viewer",
	Long: `Start the TraceNest viewer: a web page with a source picker, level
toggles, free-text search, and a paginated record table, pushed live over
a websocket. When reading a local log root, the active source refreshes
automatically as the file grows.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from config: 8484)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ntracenest viewer shutting down...")
		cancel()
		time.Sleep(200 * time.Millisecond)
		os.Exit(0)
	}()

	reader := newReader()

	ctrl := controller.New(reader, viper.GetInt("max_lines"), viper.GetInt("page_size"), logger)
	go ctrl.Start(ctx)

	// Local log roots support change notifications; refresh the active
	// source when its file changes.
	if viper.GetString("backend") == "" {
		notifier, err := source.NewNotifier(viper.GetString("log_root"), logger)
		if err != nil {
			logger.Warn().Err(err).Msg("change notifications unavailable")
		} else {
			go notifier.Start(ctx)
			go func() {
				for name := range notifier.Events {
					if vm, ok := ctrl.LatestView(); ok && vm.Source == name {
						ctrl.Refresh()
					}
				}
			}()
		}
	}

	port := servePort
	if port == "" {
		port = viper.GetString("port")
	}

	logger.Info().Str("port", port).Msg("viewer listening")
	return server.New(ctrl, reader, port, logger).Start()
}
