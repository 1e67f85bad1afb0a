package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vishwajitvm/tracenest/internal/source"
)

var (
	cfgFile   string
	outputFmt string
	verbose   bool

	logger zerolog.Logger
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "tracenest",
	Short: "TraceNest — log inspection tool",
	Long: `TraceNest turns raw log lines into uniform, classified records and
lets you filter, search, and page through them. It reads tracenest.v1
JSON-line logs as well as arbitrary plain text, from a local log root or
a remote TraceNest backend.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.tracenest.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "TraceNest backend URL (empty: read the local log root)")
	rootCmd.PersistentFlags().String("log-root", "", "local log root directory (default: TraceNestLogs)")
	rootCmd.PersistentFlags().Int("max-lines", 0, "maximum lines fetched per source (default: 5000)")
	rootCmd.PersistentFlags().Int("page-size", 0, "records per page (default: 50)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("log_root", rootCmd.PersistentFlags().Lookup("log-root"))
	_ = viper.BindPFlag("max_lines", rootCmd.PersistentFlags().Lookup("max-lines"))
	_ = viper.BindPFlag("page_size", rootCmd.PersistentFlags().Lookup("page-size"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".tracenest")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("log_root", "TraceNestLogs")
	viper.SetDefault("max_lines", 5000)
	viper.SetDefault("page_size", 50)
	viper.SetDefault("http_timeout", "10s")
	viper.SetDefault("port", "8484")

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func setupLogger() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// newReader picks the configured backend: a remote TraceNest instance or
// the local log root directory.
func newReader() source.Reader {
	if backend := viper.GetString("backend"); backend != "" {
		return source.NewHTTPReader(backend, viper.GetDuration("http_timeout"), logger)
	}
	return source.NewDirReader(viper.GetString("log_root"), logger)
}
