package commands

import (
	"path/filepath"
	"strings"

	"github.com/haystack-go/hscore/codec/csv"
	"github.com/haystack-go/hscore/codec/json"
	"github.com/haystack-go/hscore/codec/trio"
	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/zinc"
)

// codecNameFromPath maps a file extension to the codec name it implies,
// used when --from/--to is omitted.
func codecNameFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zinc":
		return "zinc"
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".trio":
		return "trio"
	default:
		return ""
	}
}

// decodeGrid decodes data using the named codec ("zinc", "json", "csv", "trio").
func decodeGrid(codecName string, data []byte) (*grid.Grid, error) {
	switch codecName {
	case "zinc":
		return zinc.ParseGrid(string(data))
	case "json":
		return json.Decode(data)
	case "csv":
		return csv.Decode(data)
	case "trio":
		return trio.Decode(data)
	default:
		return nil, errors.Newf("unknown codec %q (want zinc, json, csv, or trio)", codecName)
	}
}

// encodeGrid encodes g using the named codec.
func encodeGrid(codecName string, g *grid.Grid) ([]byte, error) {
	switch codecName {
	case "zinc":
		return []byte(zinc.EmitGrid(g)), nil
	case "json":
		return json.Encode(g)
	case "csv":
		return csv.Encode(g)
	case "trio":
		return trio.Encode(g)
	default:
		return nil, errors.Newf("unknown codec %q (want zinc, json, csv, or trio)", codecName)
	}
}
