package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:           "cart-service",
		Short:         "Shopping cart with a free-gift promotion over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(addr, dev, cmd.Flags().Changed("dev"))
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides CART_HTTP__ADDR)")
	cmd.Flags().BoolVar(&dev, "dev", false, "development logging (overrides CART_LOG__DEVELOPMENT)")
	return cmd
}
