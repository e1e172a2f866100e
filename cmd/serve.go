package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/probatio/dossier/config"
	"github.com/probatio/dossier/internal/api"
	"github.com/probatio/dossier/internal/dossier"
	"github.com/probatio/dossier/internal/legal"
	"github.com/probatio/dossier/internal/registry"
	"github.com/probatio/dossier/internal/scrape"
	"github.com/probatio/dossier/internal/slack"
	"github.com/probatio/dossier/internal/techstack"
)

// serveCmd is the cobra command that starts the dossier API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the dossier api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// serve initializes dependencies and starts the dossier API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	assembler, err := setupAssembler(cfg)
	if err != nil {
		return fmt.Errorf("setting up assembler: %w", err)
	}

	detector := techstack.New()
	slackClient := setupSlack(cfg)

	routerCfg := api.RouterConfig{
		Assembler:      assembler,
		Detector:       detector,
		MaxBodySize:    cfg.Server.MaxBodySize,
		AnalyzeTimeout: cfg.Dossier.AnalyzeTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	if slackClient != nil {
		routerCfg.Notifier = slackClient
	}

	handler := api.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting dossier service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupAssembler wires the fetcher, legal page discoverer, and registry client
// into a dossier assembler from config
func setupAssembler(cfg *config.Config) (*dossier.Assembler, error) {
	fetcherOpts := []scrape.Option{
		scrape.WithTimeout(cfg.Scrape.Timeout),
		scrape.WithMaxRedirects(cfg.Scrape.MaxRedirects),
	}

	if cfg.Scrape.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, scrape.WithUserAgent(cfg.Scrape.UserAgent))
	}

	fetcher, err := scrape.NewHTTPXFetcher(fetcherOpts...)
	if err != nil {
		return nil, fmt.Errorf("initializing fetcher: %w", err)
	}

	discoverer := legal.NewDiscoverer(legal.WithMaxLinks(cfg.Dossier.MaxLegalPages))

	registryOpts := []registry.Option{
		registry.WithHTTPClient(&http.Client{Timeout: cfg.Registry.Timeout}),
	}

	if cfg.Registry.BaseURL != "" {
		registryOpts = append(registryOpts, registry.WithBaseURL(cfg.Registry.BaseURL))
	}

	reg := registry.New(registryOpts...)

	return dossier.New(fetcher, discoverer, reg,
		dossier.WithMaxCandidates(cfg.Dossier.MaxCandidates),
		dossier.WithMaxCompanies(cfg.Dossier.MaxCompanies),
		dossier.WithHomeTextLimit(cfg.Dossier.HomeTextLimit),
		dossier.WithLegalTextLimit(cfg.Dossier.LegalTextLimit),
	)
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
