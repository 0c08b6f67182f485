package main

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/panoplyio/dbsrv/client"
	"github.com/panoplyio/dbsrv/internal/observer"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Talk to a running database service",
	}

	pf := cmd.PersistentFlags()
	pf.String("host", "127.0.0.1", "server address")
	pf.Int("port", 50051, "server port")
	pf.Bool("tls", false, "use TLS when dialing the server")
	pf.String("prefix", "", "prefix every statement with this string before sending it")
	pf.String("database", "default", "database identifier to connect to")
	pf.String("format", "json", "output format: json or binary")
	pf.String("out", "-", "output path, or - for stdout, or empty to suppress output")
	for _, name := range []string{"host", "port", "tls", "prefix", "database", "format", "out"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}

	cmd.AddCommand(newExecCmd(), newQueryCmd(), newTablesCmd())
	return cmd
}

func dialAdapter(ctx context.Context) (*client.Adapter, func(), error) {
	addr := fmt.Sprintf("%s:%d", viper.GetString("host"), viper.GetInt("port"))

	creds := insecure.NewCredentials()
	if viper.GetBool("tls") {
		creds = credentials.NewTLS(nil)
	}

	cc, err := client.Dial(ctx, addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, nil, fmt.Errorf("dbsrv: dial %s: %w", addr, err)
	}

	a := client.New(cc)
	if err := a.Connect(ctx, viper.GetString("database")); err != nil {
		_ = cc.Close()
		return nil, nil, fmt.Errorf("dbsrv: connect: %w", err)
	}
	return a, func() { _ = cc.Close() }, nil
}

func statementWithPrefix(sql string) string {
	prefix := viper.GetString("prefix")
	if prefix == "" {
		return sql
	}
	return strings.TrimSpace(prefix) + " " + sql
}

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <statement>",
		Short: "Run a statement expected to produce no rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, closeFn, err := dialAdapter(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := a.Exec(ctx, statementWithPrefix(args[0]))
			if err != nil {
				return err
			}
			return writeResult(res)
		},
	}
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <statement>",
		Short: "Run a statement and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, closeFn, err := dialAdapter(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := a.Query(ctx, statementWithPrefix(args[0]))
			if err != nil {
				return err
			}
			return writeResult(res)
		},
	}
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the connected database's tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, closeFn, err := dialAdapter(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			tables, err := a.Tables(ctx)
			if err != nil {
				return err
			}
			return writeOutput(tables)
		},
	}
}

// writeResult renders an observer.Result per --format/--out.
func writeResult(res observer.Result) error {
	if res.Mode == observer.ModeError {
		return fmt.Errorf("dbsrv: %s: %s", res.Code, res.Message)
	}
	return writeOutput(res)
}

func writeOutput(v interface{}) error {
	out := viper.GetString("out")
	if out == "" {
		return nil
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("dbsrv: open %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	switch viper.GetString("format") {
	case "binary":
		return gob.NewEncoder(w).Encode(v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
