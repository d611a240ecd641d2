// @title        Irrigation Panel API
// @version      1.0
// @description  Mirrors an irrigation controller's motor, duration and schedules; keeps settings and run history.
// @BasePath     /
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "irrigation"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "irrigation-panel",
	Short:         "Keeps an irrigation controller and its panel in sync",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	setDefaults()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default configs/config.yml)")
	flags.String("db", "", "SQLite database file")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("db.path", flags.Lookup("db"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "app.db")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("log.file", "")
	viper.SetDefault("device.host", models.DefaultDeviceHost)
	viper.SetDefault("device.port", models.DefaultDevicePort)
	viper.SetDefault("device.simulation", false)
	viper.SetDefault("device.check_timeout", 3*time.Second)
	viper.SetDefault("device.request_timeout", 10*time.Second)
	viper.SetDefault("device.sim_latency", 500*time.Millisecond)
	viper.SetDefault("intervals.connection", 5*time.Second)
	viper.SetDefault("intervals.schedule", 60*time.Second)
	viper.SetDefault("mqtt.broker", "")
	viper.SetDefault("mqtt.topic", "irrigation")
	viper.SetDefault("mqtt.interval", 5*time.Second)
}

// loadConfig reads configs/config.yml (or --config) with IRRIGATION_* overrides.
// A missing file is fine; defaults and environment apply.
func loadConfig() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath("configs") // configs/config.yml
		viper.SetConfigName("config")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func initLogger() *logger.Logger {
	return logger.Init(logger.Options{
		Level: viper.GetString("log.level"),
		File:  viper.GetString("log.file"),
	})
}

// deviceDefaults is the configuration used until a stored one exists.
func deviceDefaults() models.Config {
	cfg := models.DefaultConfig()
	cfg.DeviceHost = viper.GetString("device.host")
	cfg.DevicePort = viper.GetInt("device.port")
	cfg.Simulation = viper.GetBool("device.simulation")
	return cfg
}
