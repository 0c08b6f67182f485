// Command dbsrv is the reference CLI for the embedded SQL database
// service: a `serve` subcommand that runs the gRPC Service Dispatcher
// (component C6) and a `client` subcommand family that drives it through
// the Adapter Facade (component C7), mirroring the corpus's azvaliev/sql
// flag-driven CLI shape (--host/--port style flags) with cobra supplying
// the subcommand tree.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/panoplyio/dbsrv/internal/logging"
)

var cfgFile string

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbsrv",
		Short: "Embedded SQL database service: server and client",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLevel(viper.GetString("log-level"))
		},
	}

	pf := cmd.PersistentFlags()
	pf.SetNormalizeFunc(normalizeDashes)
	pf.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.dbsrv.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log-level", pf.Lookup("log-level"))

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newClientCmd())
	return cmd
}

// normalizeDashes treats foo_bar and foo-bar as the same flag, since viper
// config keys and env vars conventionally use underscores.
func normalizeDashes(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".dbsrv")
		}
	}
	viper.SetEnvPrefix("DBSRV")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
