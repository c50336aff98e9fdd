package monitor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uf46yr/htop/internal/metrics"
	"github.com/uf46yr/htop/internal/present"
	"github.com/uf46yr/htop/internal/render"
	"github.com/uf46yr/htop/internal/sampler"
)

// TestRun_LocalMachine drives the whole pipeline against this machine
// with plain output into a buffer.
func TestRun_LocalMachine(t *testing.T) {
	if testing.Short() {
		t.Skip("samples the local machine")
	}

	var out bytes.Buffer
	s := sampler.New(metrics.NewGopsutilSource(), sampler.WithTimeout(time.Second))
	ctrl := New(Options{Interval: time.Second, ForcePlain: true}, s,
		present.New(present.DefaultBands(), present.Size{}),
		nil,
		func() render.Sink {
			return render.NewPlainSink(&out, present.Size{Rows: 30, Cols: 100},
				render.WithColorProfile(termenv.Ascii))
		},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	require.NoError(t, ctrl.Run(ctx))

	text := out.String()
	assert.GreaterOrEqual(t, strings.Count(text, "\n--- "), 1, "at least two frames")
	assert.Contains(t, text, "PID")
	assert.Contains(t, text, "Mode: Basic")
	assert.NotContains(t, text, "\x1b[")
}
