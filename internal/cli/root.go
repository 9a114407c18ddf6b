package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foundation/internal/adapters"
	"foundation/internal/app"
	"foundation/internal/core"
	"foundation/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "FOUNDATION"

type RootConfig struct {
	ConfigFile  string
	LogLevel    string
	StoragePath string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "foundation",
		Short:         "Date parsing, role checks and analytics events for the job board",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.StoragePath, "storage", "", "Client storage file")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("storage_path", cmd.PersistentFlags().Lookup("storage"))

	cmd.AddCommand(newDateCommand())
	cmd.AddCommand(newAuthCommand())
	cmd.AddCommand(newTrackCommand())
	return cmd
}

func initConfig(configFile string) error {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetDefault("additional_digits", core.DefaultAdditionalDigits)
	viper.SetDefault("tracker", string(types.TrackerKindLog))
	viper.SetDefault("tracking_id", adapters.DefaultTrackingID)
	viper.SetDefault("collect_endpoint", adapters.DefaultCollectEndpoint)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("foundation")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/foundation")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService() (app.Service, error) {
	cfg := app.DefaultConfig()
	cfg.AdditionalDigits = viper.GetInt("additional_digits")
	cfg.Timezone = viper.GetString("timezone")
	if path := strings.TrimSpace(viper.GetString("storage_path")); path != "" {
		cfg.StoragePath = path
	}
	cfg.Tracker = types.TrackerKind(strings.ToLower(strings.TrimSpace(viper.GetString("tracker"))))
	cfg.TrackingID = viper.GetString("tracking_id")
	cfg.CollectEndpoint = viper.GetString("collect_endpoint")
	cfg.HTTPTimeoutSec = viper.GetInt("http_timeout")
	cfg.EventOut = os.Stdout
	return app.NewService(cfg)
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
