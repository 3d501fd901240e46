package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haystack-go/hscore/cmd/hscore/commands"
	"github.com/haystack-go/hscore/logger"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "hscore",
	Short: "hscore - Haystack ontology core",
	Long: `hscore - Haystack ontology core: the tagged Value type system,
Grid model, Zinc/JSON/CSV/Trio codecs, filter grammar, and SQL
translation layer for a Haystack-style Provider.

Examples:
  hscore parse site.zinc                          # decode a Zinc file and print a summary
  hscore convert site.zinc --to json              # re-encode across codecs
  hscore filter 'occupied and area > 50sqm' site.zinc
  hscore db migrate --path ./hscore.db             # apply schema migrations
  hscore version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.FilterCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
