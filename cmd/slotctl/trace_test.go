package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slotkit/internal/trace"
)

func TestTraceCommand(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		wantErr     string
		wantContain []string
	}{
		{
			name:   "passing script",
			script: "capacity.trace",
			wantContain: []string{
				"create A       -> ok h(1:0)",
				"create X       -> capacity",
				"create C       -> ok h(1:1)",
				"get A          -> stale",
				"8 steps, 0 failed, 2 live",
			},
		},
		{
			name:        "failing script",
			script:      "failing.trace",
			wantErr:     "1 expectation(s) failed",
			wantContain: []string{"get A          -> stale  FAIL (want ok)"},
		},
		{
			name:    "missing script",
			script:  "nope.trace",
			wantErr: "failed to open script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)

			output, err := captureOutput(t, func() error {
				return runTrace([]string{filepath.Join("testdata", tt.script)})
			})

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantContain {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestTraceCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runTrace([]string{filepath.Join("testdata", "capacity.trace")})
	})
	require.NoError(t, err)

	var rep trace.Report
	assertJSON(t, output, &rep)
	require.Len(t, rep.Steps, 8)
	assert.Equal(t, "h(1:1)", rep.Steps[5].Detail)
	assert.Equal(t, 2, rep.Stats.Live)
	assert.Equal(t, 1, rep.Stats.CapacityRejects)
}

func TestTraceCommand_Quiet(t *testing.T) {
	resetFlags(t)
	quiet = true

	output, err := captureOutput(t, func() error {
		return runTrace([]string{filepath.Join("testdata", "capacity.trace")})
	})
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(output))
}

func TestFormatStep(t *testing.T) {
	s := trace.Step{
		Instr:   trace.Instr{Line: 3, Op: trace.OpNew, Max: 4},
		Outcome: trace.OutcomeOK,
		Pass:    true,
	}
	assert.Equal(t, "   3  new 4          -> ok", formatStep(s))

	s.Instr.Max = 0
	assert.Equal(t, "   3  new 0          -> ok", formatStep(s))

	s.Instr.Max = -1
	assert.Equal(t, "   3  new            -> ok", formatStep(s))

	s = trace.Step{
		Instr:   trace.Instr{Line: 12, Op: trace.OpRemove, Label: "B", Expect: "double-free"},
		Outcome: trace.OutcomeStale,
	}
	assert.Equal(t, "  12  remove B       -> stale  FAIL (want double-free)", formatStep(s))
}
