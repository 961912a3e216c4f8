// Command agenda processes monthly room-reservation batches, either as a
// one-shot CLI run or behind an upload web page.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agenda",
		Short: "Monthly room-reservation batch processor with conflict resolution",
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newProcessCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
