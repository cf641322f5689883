package app

import (
	"github.com/dshills/scrubbing/internal/config"
	"github.com/dshills/scrubbing/internal/renderer/core"
	"github.com/dshills/scrubbing/internal/surface"
)

// buildTheme turns configured hex colours into a surface theme. The
// orientation hint is drawn halfway between the label and active colours.
// Colours were checked by config validation; bad ones are ignored.
func buildTheme(tc config.ThemeConfig) surface.Theme {
	theme := surface.DefaultTheme()

	label := core.ColorDefault
	if c, err := core.ColorFromHex(tc.Label); tc.Label != "" && err == nil {
		label = c
		theme.Label = theme.Label.WithForeground(c)
	}
	if c, err := core.ColorFromHex(tc.Active); tc.Active != "" && err == nil {
		theme.Active = core.DefaultStyle().Bold().WithForeground(core.ColorFromRGB(255, 255, 255)).WithBackground(c)
		theme.Hint = theme.Hint.WithForeground(label.Blend(c, 0.5))
	}
	return theme
}
