package market

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBarsCSV(t *testing.T) {
	t.Parallel()

	in := `time,open,high,low,close,volume
2025-03-10T09:00:00Z,100,101,99,100.5,12
2025-03-10T09:01:00Z,100.5,102,100,101.5,8
1741597320,101.5,101.5,100.8,101
`
	bars, err := LoadBarsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 12.0, bars[0].Volume)
	assert.Equal(t, 101.5, bars[1].Close)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 2, 0, 0, time.UTC), bars[2].Time)
	assert.Equal(t, 0.0, bars[2].Volume)
}

func TestLoadBarsCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"short row", "2025-03-10T09:00:00Z,1,2,0\n"},
		{"bad number", "2025-03-10T09:00:00Z,1,x,0,1\n"},
		{"bad time", "yesterday,1,2,0,1\n"},
		{"high below low", "2025-03-10T09:00:00Z,1,0,2,1\n"},
		{"out of order", "2025-03-10T09:01:00Z,1,2,0,1\n2025-03-10T09:00:00Z,1,2,0,1\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadBarsCSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Direction{"up": Up, "CALL": Up, "put": Down, "sell": Down, "hold": Flat, "": Flat} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)

	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Flat, Flat.Opposite())
	assert.Equal(t, "UP", Up.String())
}
