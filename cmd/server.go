package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/annoview/internal/api"
	"github.com/ziadkadry99/annoview/internal/config"
	"github.com/ziadkadry99/annoview/internal/dashboard"
	"github.com/ziadkadry99/annoview/internal/db"
	"github.com/ziadkadry99/annoview/internal/feedback"
	"github.com/ziadkadry99/annoview/internal/server"
)

var (
	serverPort int
	serverMode string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the annotation viewer and document API",
	Long: `Starts the annoview HTTP server: the viewer page at /, live updates on
/ws/view, the document API under /api and, when feedback_db is set, the
element feedback store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		if cmd.Flags().Changed("mode") {
			cfg.Mode = config.Mode(serverMode)
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		log, closeLog, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, store := newSource(cfg, log)
		if store != nil && cfg.Watch && cfg.CacheTTL > 0 {
			go func() {
				if err := store.Watch(ctx); err != nil {
					log.Warn().Err(err).Msg("checkpoint watcher stopped")
				}
			}()
		}

		// Open feedback database.
		var fbStore *feedback.Store
		if cfg.FeedbackDB != "" {
			database, err := db.Open(cfg.FeedbackDB)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()
			log.Debug().Str("path", database.Path()).Msg("feedback database opened")
			fbStore = feedback.NewStore(database)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, log)

		// Register all feature routes.
		api.RegisterRoutes(srv.API(), src, log)
		if fbStore != nil {
			feedback.RegisterRoutes(srv.API(), fbStore)
		}
		dash := dashboard.New(src, cfg.Mode, newRenderer(cfg, log), fbStore, log)
		dash.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		ev := log.Info().
			Str("version", Version).
			Str("mode", string(cfg.Mode)).
			Int("port", cfg.Port).
			Str("feedback_db", cfg.FeedbackDB)
		if cfg.Remote() {
			ev = ev.Str("api_url", cfg.APIURL)
		} else {
			ev = ev.Str("checkpoints", cfg.CheckpointDir)
		}
		ev.Msg("annoview server starting")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on")
	serverCmd.Flags().StringVar(&serverMode, "mode", "compare", "Viewer mode: compare or legacy")
	rootCmd.AddCommand(serverCmd)
}
