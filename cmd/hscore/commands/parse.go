package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haystack-go/hscore/errors"
)

var parseFromFlag string

// ParseCmd decodes a grid file and prints a summary: column names, row
// count, and the grid-level meta tags.
var ParseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Decode a grid file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	ParseCmd.Flags().StringVar(&parseFromFlag, "from", "", "source codec: zinc, json, csv, trio (default: inferred from extension)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	codecName := parseFromFlag
	if codecName == "" {
		codecName = codecNameFromPath(path)
	}
	if codecName == "" {
		return errors.Newf("cannot infer codec from %q, pass --from", path)
	}

	g, err := decodeGrid(codecName, data)
	if err != nil {
		return errors.Wrap(err, "decode grid")
	}

	fmt.Printf("rows: %d\n", len(g.Rows))
	fmt.Printf("cols: ")
	for i, c := range g.Cols {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Print(c.Name)
	}
	fmt.Println()
	if g.Meta.Len() > 0 {
		fmt.Println("meta:")
		for _, k := range g.Meta.Keys() {
			v, _ := g.Meta.Get(k)
			fmt.Printf("  %s: %s\n", k, v.String())
		}
	}
	return nil
}
