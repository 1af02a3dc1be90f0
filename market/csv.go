package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadBarsCSV reads bars from CSV with the columns
// time,open,high,low,close[,volume]. A header row is skipped when present.
// Time may be RFC3339 or unix seconds.
func LoadBarsCSV(r io.Reader) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []Bar
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "time") {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("line %d: want at least 5 fields, got %d", line, len(rec))
		}

		b, err := parseBar(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := len(out); n > 0 && !b.Time.After(out[n-1].Time) {
			return nil, fmt.Errorf("line %d: bars out of order at %s", line, b.Time.Format(time.RFC3339))
		}
		out = append(out, b)
	}
	return out, nil
}

// LoadBarsFile opens path and reads it with LoadBarsCSV.
func LoadBarsFile(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadBarsCSV(f)
}

func parseBar(rec []string) (Bar, error) {
	ts, err := parseTime(rec[0])
	if err != nil {
		return Bar{}, err
	}

	var vals [5]float64
	n := len(rec)
	if n > 6 {
		n = 6
	}
	for i := 1; i < n; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("field %d: %w", i, err)
		}
		vals[i-1] = v
	}

	b := Bar{Time: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4]}
	if err := b.Validate(); err != nil {
		return Bar{}, err
	}
	return b, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	u, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", s)
	}
	return time.Unix(u, 0).UTC(), nil
}
