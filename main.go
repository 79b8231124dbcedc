// Products REST API.
//
//	@title			Products REST API
//	@version		1.0.0
//	@description	CRUD API for products: name, price and availability.
//	@BasePath		/
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	envFile string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "productapi",
		Short:         "Products REST API server",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(opts)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply schema migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(opts)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert sample products",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd.Context(), opts)
			},
		},
	)
	return cmd
}
