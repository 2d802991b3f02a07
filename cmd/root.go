package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/otpiq/config"
	"github.com/s0up4200/otpiq/otpiq"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *otpiq.Client

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Global flags
	apiKey string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "otpiq",
	Short: "Send verification codes and messages through OTPiq",
	Long: `otpiq is a CLI for the OTPiq messaging API. It sends verification codes
and custom messages over SMS, WhatsApp and Telegram, tracks delivery and
shows project credit and sender ids.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version reported by the version and update commands
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, explainError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "OTPiq API key (overrides config and OTPIQ_API_KEY)")
}

// initializeApp loads the configuration and creates the client
func initializeApp(cmd *cobra.Command, args []string) error {
	var overrides []config.Override
	if cmd.Flags().Changed("api-key") {
		overrides = append(overrides, config.WithValue("api_key", apiKey))
	}

	var err error
	cfg, err = config.Load(cfgFile, overrides...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = otpiq.NewClient(cfg.APIKey, logger,
		otpiq.WithBaseURL(cfg.BaseURL),
		otpiq.WithTimeout(cfg.Timeout),
		otpiq.WithUserAgent("otpiq-cli/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTPiq client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// explainError adds a hint for errors the user can act on
func explainError(err error) string {
	var (
		rateLimit *otpiq.RateLimitError
		credit    *otpiq.InsufficientCreditError
		threshold *otpiq.SpendingThresholdError
	)

	switch {
	case errors.As(err, &rateLimit):
		return fmt.Sprintf("%v\nLimit is %d requests per %d minutes; retry after %d minutes.",
			err, rateLimit.MaxRequests, rateLimit.TimeWindowMinutes, rateLimit.WaitMinutes)
	case errors.As(err, &credit):
		return fmt.Sprintf("%v\nTop up at least %g credit to send this message.",
			err, credit.RequiredCredit-credit.YourCredit)
	case errors.As(err, &threshold):
		return fmt.Sprintf("%v\nThis message costs %g; raise the project spending threshold to continue.",
			err, threshold.Cost)
	case errors.Is(err, otpiq.ErrUnauthorized):
		return fmt.Sprintf("%v\nCheck api_key in your config or OTPIQ_API_KEY.", err)
	}
	return err.Error()
}
