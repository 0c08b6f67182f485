package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"github.com/panoplyio/dbsrv/internal/logging"
	"github.com/panoplyio/dbsrv/internal/registry"
	"github.com/panoplyio/dbsrv/internal/service"
	"github.com/panoplyio/dbsrv/internal/sqlclass"
	"github.com/panoplyio/dbsrv/proto/dbsvc"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the database service",
		RunE:  runServe,
	}

	flags := cmd.Flags()
	flags.String("host", "127.0.0.1", "address to listen on")
	flags.Int("port", 50051, "port to listen on")
	flags.String("access", "admin", "maximum access level granted to every connection: anonymous, read_only, read_write, admin")
	_ = viper.BindPFlag("host", flags.Lookup("host"))
	_ = viper.BindPFlag("port", flags.Lookup("port"))
	_ = viper.BindPFlag("access", flags.Lookup("access"))

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	host := viper.GetString("host")
	port := viper.GetInt("port")
	// the client command binds the same "host"/"port" viper keys to its own
	// flags, so explicitly set serve flags are read from cmd directly.
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	access := sqlclass.ParseAccessLevel(viper.GetString("access"))

	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("dbsrv: listen %s: %w", addr, err)
	}

	reg := registry.New()
	defer reg.Shutdown()

	srv := grpc.NewServer()
	dbsvc.RegisterDatabaseServiceServer(srv, service.New(reg, access))

	logging.Log.WithFields(map[string]interface{}{
		"addr":   addr,
		"access": access.String(),
	}).Info("serving")

	return srv.Serve(ln)
}
