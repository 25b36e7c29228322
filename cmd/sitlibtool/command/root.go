/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcusjacobson/sitlib/cmd/sitlibtool/command/convert"
	"github.com/marcusjacobson/sitlib/cmd/sitlibtool/command/library"
	"github.com/marcusjacobson/sitlib/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "sitlibtool",
	Version: version,
	Short:   "A cli tool for working with sensitive information type mapping libraries",
	Long: `A cli tool for working with sensitive information type mapping libraries.

This tool can:

- Build the identifier to display name mapping table from cache files, mapping libraries and a live tenant.
- Resolve wrapped identifiers such as "Custom SIT (<id>)" to display names.
- Report how effectively the values in exported scan results resolve against the table.
- Convert legacy cache files to canonical mapping library files.
- Perform operations and checks on a mapping library member.
`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.Initialize(viper.GetBool("json"), viper.GetBool("verbose")); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer logger.Cleanup()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		BoolP("json", "j", false, "Output machine readable JSON instead of formatted text")
	rootCmd.PersistentFlags().
		BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		StringArray("cache", nil, "Mapping cache file to read first (repeatable)")
	rootCmd.PersistentFlags().
		StringArray("library", nil, "Mapping library directory or go-getter URL (repeatable)")
	rootCmd.PersistentFlags().
		String("tenant", "", `Live tenant source to consult last: "graph" or "powershell"`)
	rootCmd.PersistentFlags().
		Int("parallelism", 0, "Number of parallel tenant requests and report file scans")
	rootCmd.PersistentFlags().
		Bool("allow-overwrite", false, "Allow later sources to replace entries from earlier ones")

	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))                       // nolint: errcheck
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))                 // nolint: errcheck
	viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))                     // nolint: errcheck
	viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))                 // nolint: errcheck
	viper.BindPFlag("tenant", rootCmd.PersistentFlags().Lookup("tenant"))                   // nolint: errcheck
	viper.BindPFlag("parallelism", rootCmd.PersistentFlags().Lookup("parallelism"))         // nolint: errcheck
	viper.BindPFlag("allow-overwrite", rootCmd.PersistentFlags().Lookup("allow-overwrite")) // nolint: errcheck

	rootCmd.AddCommand(&resolveCmd)
	rootCmd.AddCommand(&tableCmd)
	rootCmd.AddCommand(&reportCmd)
	rootCmd.AddCommand(&cacheBaseCmd)
	rootCmd.AddCommand(&versionCmd)
	rootCmd.AddCommand(&convert.ConvertBaseCmd)
	rootCmd.AddCommand(&library.LibraryCmd)
}

// initConfig reads the config file and bound environment variables, if present.
func initConfig() {
	viper.SetConfigName("sitlib")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".sitlib"))
	}

	viper.SetEnvPrefix("SITLIB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debugw("using config file", "path", viper.ConfigFileUsed())
	}
}
