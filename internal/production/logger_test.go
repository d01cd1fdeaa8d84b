package production

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/immutablectx/internal/core"
)

type counter struct {
	Count int
}

func TestHistoryLogger_LogsEverySnapshot(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hl := NewHistoryLogger[counter](logger)

	c := core.New(counter{}, core.WithHooks(hl.Hooks()))
	require.NoError(t, c.Apply(func(s *counter) { s.Count++ }))
	require.NoError(t, c.Apply(func(s *counter) { s.Count++ }))

	entries := hl.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []counter{{0}, {1}, {2}}, entries)

	out := buf.String()
	assert.Contains(t, out, "snapshot produced")
	assert.Contains(t, out, "seq=3")
	assert.Contains(t, out, "count: 2")
}

func TestHistoryLogger_IgnoresForceSet(t *testing.T) {
	hl := NewHistoryLogger[counter](slog.New(slog.DiscardHandler))
	c := core.New(counter{}, core.WithHooks(hl.Hooks()))
	c.ForceSet(counter{Count: 9})

	assert.Len(t, hl.Entries(), 1)
}

func TestHistoryLogger_UnrenderableSnapshot(t *testing.T) {
	var buf bytes.Buffer
	hl := NewHistoryLogger[func()](slog.New(slog.NewTextHandler(&buf, nil)))
	hl.Log(func() {})

	assert.Len(t, hl.Entries(), 1)
	assert.Contains(t, buf.String(), "snapshot not renderable")
}
