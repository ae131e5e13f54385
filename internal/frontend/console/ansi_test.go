package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColorize(t *testing.T) {
	p := Palette{Enabled: true}
	assert.Equal(t, "\033[31mdanger\033[0m", p.Colorize(Red, "danger"))
}

func TestColorize_Disabled(t *testing.T) {
	p := Palette{}
	assert.Equal(t, "plain", p.Colorize(Red, "plain"))
	assert.Equal(t, "n=3", p.Colorf(Green, "n=%d", 3))
}

func TestColorf(t *testing.T) {
	p := Palette{Enabled: true}
	assert.Equal(t, "\033[32mmoves: 5\033[0m", p.Colorf(Green, "moves: %d", 5))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"
	assert.Equal(t, "red normal bold green", StripANSI(input))
	assert.Equal(t, "", StripANSI(""))
}

// Property: StripANSI(Colorize(color, text)) == text for any ASCII text.
func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{Red, Green, Yellow, Cyan, BrightYellow, BrightCyan, Bold, Dim}
	p := Palette{Enabled: true}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(t, "text")
		colorIdx := rapid.IntRange(0, len(colors)-1).Draw(t, "color")
		assert.Equal(t, text, StripANSI(p.Colorize(colors[colorIdx], text)))
	})
}
