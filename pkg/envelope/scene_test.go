package envelope

import (
	"bytes"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff8800", 0xFF8800},
		{"0x00FF00", 0x00FF00},
		{"0000ff", 0x0000FF},
		{" #FFFFCC ", 0xFFFFCC},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorFormatting(t *testing.T) {
	c := Color(0xFF8800)

	assert.Equal(t, "#ff8800", c.String())
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0x88, B: 0x00, A: 204}, c.NRGBA(0.8))
	assert.Equal(t, uint8(255), c.NRGBA(3).A)
}

func TestBufferGeometryDispose(t *testing.T) {
	g := NewBufferGeometry(make([]float32, 18))
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 2, g.TriangleCount())

	g.Dispose()

	assert.True(t, g.Disposed())
	assert.Equal(t, 0, g.VertexCount())
}

func TestMaterialClone(t *testing.T) {
	m := &Material{Color: 1, Opacity: 0.5}
	c := m.Clone()
	c.Opacity = 1

	assert.Equal(t, 0.5, m.Opacity)
}

func TestLoggerDefaultSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelDebug))
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	group := Assemble(cornerPath(), Options{})
	group.Dispose()
	group.Dispose()

	out := buf.String()
	assert.Contains(t, out, "envelope: built")
	assert.Contains(t, out, "envelope: disposed top and wall geometry")
	assert.Contains(t, out, "disposed more than once")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelWarn))
}
