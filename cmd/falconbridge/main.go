package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/agentserver"
	"github.com/dropDatabas3/falconbridge/internal/config"
	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"github.com/dropDatabas3/falconbridge/internal/remote"
	"github.com/dropDatabas3/falconbridge/internal/session"
	"github.com/dropDatabas3/falconbridge/internal/siem"
	"github.com/dropDatabas3/falconbridge/internal/tools"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	// .env es opcional; en producción las vars vienen del entorno real.
	_ = godotenv.Load()

	var cfgPath string

	root := &cobra.Command{
		Use:   "falconbridge",
		Short: "Security platform tools for AI agents",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "ruta al config.yaml (opcional)")

	root.AddCommand(serveCmd(&cfgPath))
	root.AddCommand(toolsCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRegistry arma el registry de tools con un executor por plataforma.
func buildRegistry(cfg *config.Config) (*tools.Registry, error) {
	falcon := remote.NewClient("falcon", cfg.Falcon.BaseURL, cfg.Falcon.Token, remote.FalconOperations())
	siemExec := remote.NewClient("siem", cfg.SIEM.BaseURL, cfg.SIEM.Token, remote.SIEMOperations())
	forensics := remote.NewClient("forensics", cfg.Forensics.BaseURL, cfg.Forensics.Token, remote.ForensicsOperations())

	searcher := siem.NewSearcher(siemExec, siem.Config{
		PollInterval: cfg.SIEM.PollInterval,
		Timeout:      cfg.SIEM.Timeout,
	})

	registry := tools.NewRegistry()
	modules := []tools.Module{
		tools.NewDetectionsModule(falcon),
		tools.NewIncidentsModule(falcon),
		tools.NewHostsModule(falcon),
		tools.NewVulnerabilitiesModule(falcon),
		tools.NewIDPModule(falcon),
		tools.NewNGSIEMModule(siemExec, searcher),
		tools.NewForensicsModule(forensics),
	}
	for _, m := range modules {
		if err := m.Register(registry); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el server del protocolo de agentes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.Log.Level,
				ServiceName: "falconbridge",
				Version:     version,
			})
			defer func() { _ = logger.Sync() }()

			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			sessions, err := session.New(session.Config{
				Driver:     cfg.Session.Driver,
				Addr:       cfg.Session.Redis.Addr,
				Password:   cfg.Session.Redis.Password,
				DB:         cfg.Session.Redis.DB,
				Prefix:     cfg.Session.Redis.Prefix,
				DefaultTTL: cfg.Session.TTL,
			})
			if err != nil {
				return fmt.Errorf("session store: %w", err)
			}
			defer func() { _ = sessions.Close() }()

			srv := agentserver.NewServer(agentserver.Config{
				Addr:       cfg.Server.Addr,
				Name:       "falconbridge",
				Version:    version,
				AuthSecret: cfg.Server.AuthSecret,
				SessionTTL: cfg.Session.TTL,
			}, registry, sessions)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)
			g.Go(func() error {
				srv.RunSessionSweeper(gctx, time.Minute)
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}

func toolsCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Lista las tools registradas",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.App.Env, Level: "error"})

			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}
			for _, t := range registry.List() {
				fmt.Printf("%-26s %s\n", t.Name, t.Description)
			}
			return nil
		},
	}
}
