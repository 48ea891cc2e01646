package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matt-g-everett/ledtx/stream"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ledtx",
	Short: "Stream animated LED frames over MQTT",
	Long: `ledtx renders profiles of animated layers into LED frames and streams
them to an ledrx device over MQTT. Layer properties are animated with
keyframes on a timeline and can be driven by live data published to MQTT.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("profile", "", "profile file, relative to the profile directory")
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))

	stream.SetDefaults(viper.GetViper())
}

// initConfig loads configuration from the config file and LEDTX_ environment
// variables.
func initConfig() {
	viper.SetConfigFile(cfgFile)
	viper.SetEnvPrefix("ledtx")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	} else {
		slog.Debug("no config file, using defaults", "error", err)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
