package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/devsecquest/internal/api"
	"github.com/abhisek/devsecquest/internal/metrics"
	"github.com/abhisek/devsecquest/internal/rules"
	"github.com/abhisek/devsecquest/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the challenge HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides PORT env var)")
}

// runServe opens the store, builds dependencies, and serves until interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info().Msg("database connection established")

	collector := metrics.NewCollector("")
	repo := st.ChallengeRepo()
	svc := validation.NewService(rules.Default(), repo,
		validation.WithAwardPoints(cfg.Validation.AwardPoints),
		validation.WithPersistTimeout(cfg.Validation.PersistTimeout),
		validation.WithLogger(logger),
		validation.WithRecorder(collector),
	)

	srv := api.NewServer(api.Options{
		Addr:            cfg.Addr(),
		CORSOrigins:     cfg.Server.CORSOrigins,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Challenges:      repo,
		Validator:       svc,
		Metrics:         collector,
		Health:          st.Ping,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

