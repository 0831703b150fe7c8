package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"framed-rpc/registry"
	"framed-rpc/rpctest"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local demo server with the standard function table",
	Long: `Starts an in-process framed-rpc server exposing the standard demo
functions. Intended for trying out the demo/check/bench commands without a
production server. With --etcd, the server registers itself for discovery.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := rpctest.NewServerAddr(serveListen)
		if err != nil {
			return err
		}
		defer srv.Close()
		fmt.Printf("serving framed-rpc on %s\n", srv.Addr())

		if len(flags.EtcdAddrs) > 0 {
			reg, err := registry.NewEtcdRegistry(flags.EtcdAddrs)
			if err != nil {
				return fmt.Errorf("connect to etcd: %w", err)
			}
			if err := reg.Register(flags.Service, registry.Endpoint{Addr: srv.Addr()}, 10); err != nil {
				return fmt.Errorf("register in etcd: %w", err)
			}
			defer reg.Deregister(flags.Service, srv.Addr())
			logger.Debug().Str("service", flags.Service).Msg("registered in etcd")
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		fmt.Println("shutting down")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "127.0.0.1:9000", "listen address")
	rootCmd.AddCommand(serveCmd)
}
