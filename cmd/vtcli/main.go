// Command vtcli drives a cloud video-translation service: it submits
// translation jobs, refines them with iterations, polls the resulting
// operations and downloads the translated artifacts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/config"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/exitcode"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/logging"
	sighandler "github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "vtcli",
		Short:   "Cloud video-translation workflow client",
		Long:    "vtcli creates video-translation jobs and refinement iterations, polls their operations and downloads the translated video, subtitles and metadata.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyEnv(cmd, cfg)
			logging.SetVerbose(cfg.Verbose)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindGlobalFlags(rootCmd, cfg)

	rootCmd.AddCommand(
		newTranslateCmd(cfg),
		newCreateCmd(cfg),
		newIterateCmd(cfg),
		newStatusCmd(cfg),
		newListCmd(cfg),
		newDeleteCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(exitcode.Error)
	}
}

// bindGlobalFlags registers the connection and retry/poll flags shared by
// every subcommand. The flags directly modify fields in the config pointer.
func bindGlobalFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&cfg.Endpoint, "endpoint", "", "Service endpoint URL (or "+config.EnvEndpoint+")")
	flags.StringVar(&cfg.SubscriptionKey, "key", "", "Subscription key (or "+config.EnvSubscriptionKey+")")
	flags.StringVar(&cfg.Region, "region", "", "Service region (or "+config.EnvRegion+")")
	flags.StringVar(&cfg.APIVersion, "api-version", cfg.APIVersion, "API version query parameter")
	flags.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for downloaded artifacts")
	flags.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Delay between operation status polls")
	flags.DurationVar(&cfg.MaxWait, "max-wait", cfg.MaxWait, "Maximum time to wait for an operation")
	flags.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Retries per HTTP request on transient failures")
	flags.DurationVar(&cfg.RetryBaseDelay, "retry-delay", cfg.RetryBaseDelay, "Base delay for exponential retry backoff")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug output")
}

// applyEnv overlays environment variables onto the config for every field
// whose flag was not explicitly set, keeping the precedence chain
// defaults < environment < CLI flags.
func applyEnv(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	fromFlags := *cfg
	config.LoadFromEnv(cfg)

	if flags.Changed("endpoint") {
		cfg.Endpoint = fromFlags.Endpoint
	}
	if flags.Changed("key") {
		cfg.SubscriptionKey = fromFlags.SubscriptionKey
	}
	if flags.Changed("region") {
		cfg.Region = fromFlags.Region
	}
	if flags.Changed("api-version") {
		cfg.APIVersion = fromFlags.APIVersion
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = fromFlags.OutputDir
	}
}

// workflowContext returns a context cancelled by SIGINT/SIGTERM.
func workflowContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupted — the server-side operation keeps running")
	})
	return ctx, cancel
}

// exit terminates the process for non-success workflow codes and returns
// cleanly otherwise, so cobra does not print a second error.
func exit(code int) error {
	if code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}
