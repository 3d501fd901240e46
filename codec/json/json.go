// Package json implements the sigil-tagged JSON grid codec: grid-level
// {meta, cols, rows} framing with per-scalar sigil prefixes
// ("s:", "n:", "r:", "u:", "t:", "d:", "h:", "c:", "x:", "b:", "m:", "z:", "-:")
// disambiguating Value kinds that plain JSON cannot carry on its own.
package json

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// markerSigil, naSigil, and removeSigil match the wire tokens this
// codec emits and accepts. Remove is version-dependent in the
// reference implementation (2-char vs 3-char sigil); this codec always
// emits the 3.0 form and accepts either on decode.
const (
	markerSigil  = "m:"
	naSigil      = "z:"
	removeSigilV3 = "-:"
	removeSigilV2 = "x:-" // reference 2.0 removal sigil, accepted on decode only
)

// Encode renders g as the sigil-tagged JSON document.
func Encode(g *grid.Grid) ([]byte, error) {
	doc := map[string]interface{}{
		"meta": encodeDict(g.Meta),
		"cols": encodeCols(g.Cols),
		"rows": encodeRows(g),
	}
	return json.Marshal(doc)
}

func encodeCols(cols []grid.Column) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		m := encodeDict(c.Meta)
		m["name"] = c.Name
		out[i] = m
	}
	return out
}

func encodeRows(g *grid.Grid) []interface{} {
	out := make([]interface{}, len(g.Rows))
	for i, row := range g.Rows {
		m := make(map[string]interface{}, row.Len())
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			m[k] = encodeScalar(v)
		}
		out[i] = m
	}
	return out
}

func encodeDict(d value.Dict) map[string]interface{} {
	m := make(map[string]interface{}, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		m[k] = encodeScalar(v)
	}
	return m
}

// EncodeScalarSigil renders v the way this codec would encode it as a
// JSON cell value. Exported so other packages (the SQL filter
// translator's bound-parameter encoding) can reuse the same sigil
// scheme instead of re-deriving it.
func EncodeScalarSigil(v value.Value) interface{} {
	return encodeScalar(v)
}

func encodeScalar(v value.Value) interface{} {
	switch t := v.(type) {
	case value.Null:
		return nil
	case value.Marker:
		return markerSigil
	case value.Remove:
		return removeSigilV3
	case value.NA:
		return naSigil
	case value.Bool:
		return bool(t)
	case value.Number:
		if t.Unit == "" {
			return t.Value
		}
		return fmt.Sprintf("n:%s %s", strconv.FormatFloat(t.Value, 'g', -1, 64), t.Unit)
	case value.Str:
		return "s:" + string(t)
	case value.Uri:
		return "u:" + string(t)
	case value.Ref:
		if t.Dis != "" {
			return "r:" + t.Name + " " + t.Dis
		}
		return "r:" + t.Name
	case value.Bin:
		return "b:" + t.MIME
	case value.Date:
		return "d:" + t.String()
	case value.Time:
		return "h:" + t.String()
	case value.DateTime:
		return "t:" + t.Time.Format("2006-01-02T15:04:05.999999999-07:00") + " " + t.TZName
	case value.Coord:
		return fmt.Sprintf("c:%s,%s", strconv.FormatFloat(t.Lat, 'g', -1, 64), strconv.FormatFloat(t.Lng, 'g', -1, 64))
	case value.XStr:
		return "x:" + t.Type + ":" + t.Encoded
	case value.List:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = encodeScalar(item)
		}
		return out
	case value.Dict:
		return encodeDict(t)
	case *grid.Grid:
		return map[string]interface{}{
			"meta": encodeDict(t.Meta),
			"cols": encodeCols(t.Cols),
			"rows": encodeRows(t),
		}
	default:
		return nil
	}
}

// Decode parses the sigil-tagged JSON document back into a Grid.
func Decode(data []byte) (*grid.Grid, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode json grid")
	}
	return decodeDoc(doc)
}

func decodeDoc(doc map[string]interface{}) (*grid.Grid, error) {
	meta, err := decodeDict(asMap(doc["meta"]))
	if err != nil {
		return nil, err
	}

	rawCols, _ := doc["cols"].([]interface{})
	cols := make([]grid.Column, 0, len(rawCols))
	for _, rc := range rawCols {
		cm := asMap(rc)
		name, _ := cm["name"].(string)
		delete(cm, "name")
		cmeta, err := decodeDict(cm)
		if err != nil {
			return nil, err
		}
		cols = append(cols, grid.Column{Name: name, Meta: cmeta})
	}

	rawRows, _ := doc["rows"].([]interface{})
	rows := make([]value.Dict, 0, len(rawRows))
	for _, rr := range rawRows {
		rd, err := decodeDict(asMap(rr))
		if err != nil {
			return nil, err
		}
		rows = append(rows, rd)
	}

	return &grid.Grid{Meta: meta, Cols: cols, Rows: rows}, nil
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

// DecodeCellMap decodes a plain {tag: sigilValue, ...} map — such as one
// unmarshalled from a JSON column by a relational Provider — into a
// Dict, reusing this codec's scalar sigil scheme.
func DecodeCellMap(m map[string]interface{}) (value.Dict, error) {
	return decodeDict(m)
}

func decodeDict(m map[string]interface{}) (value.Dict, error) {
	d := value.NewDict()
	for k, raw := range m {
		v, err := decodeScalar(raw)
		if err != nil {
			return d, err
		}
		d.Set(k, v)
	}
	return d, nil
}

func decodeScalar(raw interface{}) (value.Value, error) {
	switch t := raw.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(t), nil
	case float64:
		return value.Number{Value: t}, nil
	case map[string]interface{}:
		if _, looksLikeGrid := t["cols"]; looksLikeGrid {
			return decodeDoc(t)
		}
		return decodeDict(t)
	case []interface{}:
		items := make(value.List, len(t))
		for i, item := range t {
			v, err := decodeScalar(item)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case string:
		return decodeSigilString(t)
	default:
		return nil, errors.Newf("json codec: unsupported raw value %T", raw)
	}
}

func decodeSigilString(s string) (value.Value, error) {
	switch {
	case s == markerSigil:
		return value.Marker{}, nil
	case s == naSigil:
		return value.NA{}, nil
	case s == removeSigilV3 || s == removeSigilV2:
		return value.Remove{}, nil
	case strings.HasPrefix(s, "n:"):
		return decodeNumberSigil(s[2:])
	case strings.HasPrefix(s, "s:"):
		return value.Str(s[2:]), nil
	case strings.HasPrefix(s, "u:"):
		return value.Uri(s[2:]), nil
	case strings.HasPrefix(s, "r:"):
		return decodeRefSigil(s[2:])
	case strings.HasPrefix(s, "b:"):
		return value.Bin{MIME: s[2:]}, nil
	case strings.HasPrefix(s, "d:"):
		return decodeDateSigil(s[2:])
	case strings.HasPrefix(s, "h:"):
		return decodeTimeSigil(s[2:])
	case strings.HasPrefix(s, "t:"):
		return decodeDateTimeSigil(s[2:])
	case strings.HasPrefix(s, "c:"):
		return decodeCoordSigil(s[2:])
	case strings.HasPrefix(s, "x:"):
		parts := strings.SplitN(s[2:], ":", 2)
		if len(parts) != 2 {
			return nil, errors.Newf("json codec: malformed xstr sigil %q", s)
		}
		return value.XStr{Type: parts[0], Encoded: parts[1]}, nil
	default:
		return value.Str(s), nil
	}
}

func decodeNumberSigil(rest string) (value.Value, error) {
	parts := strings.SplitN(rest, " ", 2)
	f, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, errors.Wrap(err, "decode number sigil")
	}
	unit := ""
	if len(parts) == 2 {
		unit = parts[1]
	}
	return value.Number{Value: f, Unit: unit}, nil
}

func decodeRefSigil(rest string) (value.Value, error) {
	parts := strings.SplitN(rest, " ", 2)
	ref := value.Ref{Name: parts[0]}
	if len(parts) == 2 {
		ref.Dis = parts[1]
	}
	return ref, nil
}
