package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/expense-parser/internal/api"
	"github.com/insightdelivered/expense-parser/internal/config"
	"github.com/insightdelivered/expense-parser/internal/logger"
	"github.com/insightdelivered/expense-parser/internal/parser"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statement upload API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			ctx := logger.WithContext(cmd.Context(), newLogger(cfg))
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides SERVER_PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)

	h := &api.Handler{
		Parser: parser.New(parser.WithLogger(log)),
		Log:    log,
	}
	app := api.NewApp(h, cfg.Server.MaxUploadBytes())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("addr", cfg.Server.Addr()).Msg("listening")
	return app.Listen(cfg.Server.Addr())
}
