package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var cfgFile string

// errSilent carries an exit status without printing anything more
var errSilent = errors.New("silent failure")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vesinspect",
	Short: "Inspect VES cloud objects over mutual TLS",
	Long: `vesinspect fetches objects from the VES configuration API using a
client certificate and prints them as a typed tree.

Credentials are taken from a PKCS#12 bundle (VOLT_API_P12_FILE with the
passphrase in VES_P12_PASSWORD) or from PEM files (VOLT_API_CERT and
VOLT_API_KEY). Flags and the config file take precedence over the
environment.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Config{
			Level:      log.ParseLevel(viper.GetString("log_level")),
			JSONOutput: viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"vesinspect version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.String("url", "", fmt.Sprintf("API base URL (env %s, default %s)", config.EnvURL, config.DefaultURL))
	flags.String("api-p12-file", "", fmt.Sprintf("PKCS#12 client bundle (env %s)", config.EnvP12File))
	flags.String("api-cert", "", fmt.Sprintf("PEM client certificate (env %s)", config.EnvCert))
	flags.String("api-key", "", fmt.Sprintf("PEM client key (env %s)", config.EnvKey))
	flags.String("api-ca", "", fmt.Sprintf("extra CA bundle for the API server (env %s)", config.EnvCA))
	flags.String("timeout", "", fmt.Sprintf("read timeout, seconds or a duration like 1m30s (env %s)", config.EnvTimeout))
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log in JSON format")

	for key, flag := range map[string]string{
		"url":          "url",
		"api_p12_file": "api-p12-file",
		"api_cert":     "api-cert",
		"api_key":      "api-key",
		"api_ca":       "api-ca",
		"timeout":      "timeout",
		"log_level":    "log-level",
		"log_json":     "log-json",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(credsCmd)
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

// loadParams builds the parameter bag from flags and the config file.
// Unset values are left empty so the environment can fill them in.
func loadParams(name, namespace string) (config.Params, error) {
	var params config.Params
	if err := viper.Unmarshal(&params); err != nil {
		return params, fmt.Errorf("invalid configuration: %w", err)
	}
	params.Name = name
	if namespace != "" {
		params.Namespace = namespace
	}
	return params, nil
}
