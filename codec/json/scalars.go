package json

import (
	"strconv"
	"strings"
	"time"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/value"
)

func decodeDateSigil(s string) (value.Value, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, errors.Wrap(err, "decode date sigil")
	}
	return value.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

func decodeTimeSigil(s string) (value.Value, error) {
	layout := "15:04:05"
	if strings.Contains(s, ".") {
		layout = "15:04:05.000"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, errors.Wrap(err, "decode time sigil")
	}
	return value.Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Millisecond: t.Nanosecond() / 1e6}, nil
}

func decodeDateTimeSigil(s string) (value.Value, error) {
	parts := strings.SplitN(s, " ", 2)
	if len(parts) != 2 {
		return nil, errors.Newf("json codec: datetime sigil %q is missing its timezone name", s)
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999-07:00", parts[0])
	if err != nil {
		return nil, errors.Wrap(err, "decode datetime sigil")
	}
	return value.DateTime{Time: t, TZName: parts[1]}, nil
}

func decodeCoordSigil(s string) (value.Value, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, errors.Newf("json codec: malformed coord sigil %q", s)
	}
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	lng, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return nil, errors.Newf("json codec: malformed coord sigil %q", s)
	}
	return value.Coord{Lat: lat, Lng: lng}, nil
}
