package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"igclient/pkg/config"
	"igclient/pkg/instagram"
	"igclient/pkg/logger"
	"igclient/pkg/metrics"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile   string
	username     string
	sessionStore string
	sessionDir   string
	fresh        bool
	noDelay      bool
	logLevel     string
	metricsAddr  string

	cfg *config.Config
	log logger.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "igclient",
	Short: "Retrieve accounts, medias, comments, stories and tags from Instagram",
	Long: `igclient talks to Instagram's web, GraphQL and private endpoints and prints
the results as JSON.

Most reads work anonymously. Log in first for stories, followers and writes:
the session is stored (file, encrypted file or system keychain) and reused
until it stops being valid.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := map[string]interface{}{
			"username":      username,
			"session-store": sessionStore,
			"session-dir":   sessionDir,
			"fresh":         fresh,
			"no-delay":      noDelay,
			"log-level":     logLevel,
		}

		var err error
		cfg, err = config.Load(configFile, flags)
		if err != nil {
			return err
		}

		if err := logger.Initialize(&cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = logger.GetLogger()

		if metricsAddr != "" {
			serveMetrics(metricsAddr)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.igclient.yaml)")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "Instagram username to log in with")
	rootCmd.PersistentFlags().StringVar(&sessionStore, "session-store", "", "where sessions are kept (file, encrypted, keyring, memory)")
	rootCmd.PersistentFlags().StringVar(&sessionDir, "session-dir", "", "directory of the session files")
	rootCmd.PersistentFlags().BoolVar(&fresh, "fresh", false, "discard the stored session before starting")
	rootCmd.PersistentFlags().BoolVar(&noDelay, "no-delay", false, "do not pause between pages")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	rootCmd.SetVersionTemplate(`igclient {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func newClient() (*instagram.Client, error) {
	return instagram.NewClient(cfg, log)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
}
