package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/chatter/internal/api"
	"github.com/good-yellow-bee/chatter/internal/docstore"
	"github.com/good-yellow-bee/chatter/internal/metrics"
	"github.com/good-yellow-bee/chatter/pkg/config"
)

var (
	configFile string
	httpAddr   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "chatter-server",
	Short: "Chatter Server - project message exchange API",
	Long: `Chatter Server exposes an HTTP API for exchanging text messages
within named projects, tracking which senders have participated.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatter-server %s\n", config.Version)
		fmt.Printf("  commit: %s\n", config.Commit)
		fmt.Printf("  built:  %s\n", config.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	// Local development convenience; a missing .env file is fine.
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	var cfg *Config
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = DefaultConfig()
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.Server.Address = httpAddr
	}
	cfg.Verbose = verbose

	masterKey, err := loadMasterKey(cfg)
	if err != nil {
		return err
	}

	// Auto-create data directory
	if err := os.MkdirAll(cfg.Store.Path, 0750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Initialize document store
	store := docstore.NewBadgerStore(cfg.Store.Path, masterKey)
	if err := store.Open(); err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	log.Printf("document store initialized at %s", cfg.Store.Path)

	srv, err := api.New(&api.Config{
		Address:        cfg.Server.Address,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Verbose:        cfg.Verbose,
	}, store)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	metricsSrv := metrics.NewServer(cfg.Server.MetricsAddress)
	metrics.SetBuildInfo(config.Version, config.Commit, config.BuildTime)

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	log.Printf("starting chatter-server %s (%s)", config.Version, cfg.Environment)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		return metricsSrv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Printf("server stopped")
	return nil
}

// loadMasterKey resolves the optional store encryption key: CHATTER_MASTER_KEY
// from the environment first, then the configured key file. Badger requires
// the key to be 16, 24, or 32 bytes.
func loadMasterKey(cfg *Config) ([]byte, error) {
	key := os.Getenv("CHATTER_MASTER_KEY")
	if key == "" && cfg.Store.KeyFile != "" {
		data, err := os.ReadFile(cfg.Store.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		key = strings.TrimSpace(string(data))
	}
	if key == "" {
		return nil, nil
	}
	switch len(key) {
	case 16, 24, 32:
		return []byte(key), nil
	default:
		return nil, fmt.Errorf("master key must be 16, 24, or 32 bytes, got %d", len(key))
	}
}
