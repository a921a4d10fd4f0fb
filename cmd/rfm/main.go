package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hepsw/rfm/internal/rfmconfig"
	"github.com/hepsw/rfm/internal/utils"
	"github.com/hepsw/rfm/internal/version"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var home, _ = os.UserHomeDir()

var rootCmd = &cobra.Command{
	Use:     "rfm",
	Short:   "Replicate and reconcile named files across local, SSH and XRootD hosts",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringP("config", "c", rfmconfig.DefaultConfigPath, "rfm config file")
	rootCmd.PersistentFlags().IntP("workers", "w", rfmconfig.DefaultWorkers, "maximum concurrent transfers")
	rootCmd.PersistentFlags().String("registry", rfmconfig.DefaultRegistryPath, "path to the ordered table-locations manifest used by sync when no locations are given")
}

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printErr(err.Error())
		os.Exit(1)
	}
}

func setupLogging() {
	stdoutHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})

	logPath := rfmconfig.DefaultLogFilePath
	if err := utils.EnsureParent(logPath); err != nil {
		slog.SetDefault(slog.New(stdoutHandler))
		return
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(stdoutHandler))
		return
	}

	logInterceptor := utils.NewLogInterceptor(file)
	fileHandler := slog.NewTextHandler(logInterceptor, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stdoutHandler, fileHandler)))
}

func loadConfig(cmd *cobra.Command) (*rfmconfig.Config, error) {
	configPath := resolveConfigPath(cmd)
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config read %q: %w", configPath, err)
		}
	}

	viper.SetDefault("workers", rfmconfig.DefaultWorkers)
	viper.SetDefault("registry_path", rfmconfig.DefaultRegistryPath)
	viper.SetDefault("log_file_path", rfmconfig.DefaultLogFilePath)

	viper.BindPFlag("workers", cmd.Flag("workers"))
	viper.BindPFlag("registry_path", cmd.Flag("registry"))

	viper.SetEnvPrefix("RFM")
	viper.AutomaticEnv()

	cfg := &rfmconfig.Config{
		Path:         configPath,
		Workers:      viper.GetInt("workers"),
		RegistryPath: viper.GetString("registry_path"),
		LogFilePath:  viper.GetString("log_file_path"),
	}
	return cfg, nil
}

func currentConfig(cmd *cobra.Command) (*rfmconfig.Config, error) {
	return loadConfig(cmd)
}
