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
	root := &cobra.Command{
		Use:           "sales-ledger",
		Short:         "Browse, filter and summarize point-of-sale records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env-file", ".env", "optional dotenv file read before the environment")

	root.AddCommand(newServeCmd(), newQueryCmd(), newExportCmd())
	return root
}
