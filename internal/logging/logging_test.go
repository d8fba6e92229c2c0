package logging

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Level
		wantErr bool
	}{
		"debug":         {input: "DEBUG", want: LevelDebug},
		"lowercase":     {input: "info", want: LevelInfo},
		"warn alias":    {input: "warn", want: LevelWarning},
		"warning":       {input: "WARNING", want: LevelWarning},
		"error":         {input: "Error", want: LevelError},
		"padded":        {input: " info ", want: LevelInfo},
		"unknown level": {input: "LOUD", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerLevelGate(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	l := New(&buf, LevelWarning)

	l.Debugf("dropped %d", 1)
	l.Infof("dropped %d", 2)
	l.Warningf("kept %d", 3)
	l.Errorf("kept %d", 4)

	assert.Equal(t, "WARNING kept 3\nERROR kept 4\n", buf.String())
}

func TestLoggerSetLevel(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Infof("dropped")
	l.SetLevel(LevelDebug)
	l.Debugf("kept")

	assert.Equal(t, "DEBUG kept\n", buf.String())
}
