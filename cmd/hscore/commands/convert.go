package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/haystack-go/hscore/errors"
)

var (
	convertFromFlag   string
	convertToFlag     string
	convertOutputFlag string
)

// ConvertCmd decodes a grid file with one codec and re-encodes it with
// another, the round trip spec.md's grid equivalence laws require to hold.
var ConvertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Re-encode a grid file from one codec to another",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	ConvertCmd.Flags().StringVar(&convertFromFlag, "from", "", "source codec: zinc, json, csv, trio (default: inferred from extension)")
	ConvertCmd.Flags().StringVar(&convertToFlag, "to", "zinc", "target codec: zinc, json, csv, trio")
	ConvertCmd.Flags().StringVarP(&convertOutputFlag, "output", "o", "", "output file (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	from := convertFromFlag
	if from == "" {
		from = codecNameFromPath(path)
	}
	if from == "" {
		return errors.Newf("cannot infer source codec from %q, pass --from", path)
	}

	g, err := decodeGrid(from, data)
	if err != nil {
		return errors.Wrap(err, "decode grid")
	}

	out, err := encodeGrid(convertToFlag, g)
	if err != nil {
		return errors.Wrap(err, "encode grid")
	}

	if convertOutputFlag == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(convertOutputFlag, out, 0644)
}
