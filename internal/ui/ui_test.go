package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1), "width clamps to 5, total to 1")
	assert.Equal(t, "█████ 200%", ProgressBar(4, 2, 5), "filled clamps to width")
}

func TestPanelAlignsBorders(t *testing.T) {
	SetTheme("classic")
	var buf bytes.Buffer
	Panel(&buf, []string{"short", C(fgGreen, "a longer line"), "Pequeña"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[4], "└"))

	width := len([]rune(stripANSI(lines[0])))
	for _, ln := range lines[1:4] {
		assert.Equal(t, width, len([]rune(stripANSI(ln))), "line %q", ln)
	}
}

func TestMonoThemeDisablesColor(t *testing.T) {
	defer func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	}()
	SetTheme("mono")
	SetColorForcing(true, true)

	assert.Equal(t, "plain", C(fgRed, "plain"))
	assert.Equal(t, "[x]", Current().BoxChecked)
}

func TestLeavingMonoRestoresColor(t *testing.T) {
	defer SetColorForcing(false, false)
	SetColorForcing(true, false)

	SetTheme("mono")
	assert.Equal(t, "plain", C(fgRed, "plain"))
	SetTheme("classic")
	assert.Equal(t, fgRed+"plain"+reset, C(fgRed, "plain"))
}

func TestNeonTheme(t *testing.T) {
	defer SetTheme("classic")
	SetTheme("NEON")
	assert.Equal(t, "╭", Current().CornerTL)
	SetTheme("unknown")
	assert.Equal(t, "┌", Current().CornerTL)
}

func TestOKAndFail(t *testing.T) {
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	assert.Equal(t, "✔ added\n✖ boom\n", buf.String())
}
