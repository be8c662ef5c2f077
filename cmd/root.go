package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	dataDir string
	logger  *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "certwatch",
	Short: "Track phishing-pattern domains surfacing in Certificate Transparency logs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.AddConfigPath(".")
			viper.SetConfigName(".certwatch")
			viper.SetConfigType("yaml")
		}

		setConfigDefaults()
		_ = viper.ReadInConfig()

		dataDir = viper.GetString("data_dir")
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %s", err.Error())
		}
		if abs, err := filepath.Abs(dataDir); err == nil {
			dataDir = abs
		}

		// init logger
		var l *zap.Logger
		if verbose {
			l, _ = zap.NewDevelopment()
		} else {
			l, _ = zap.NewProduction()
		}
		logger = l.Sugar()

		logger.Debugw("configured", "data_dir", dataDir)

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.certwatch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	bindConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}
