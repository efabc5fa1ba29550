package scanner

// iconSizeTier maps a minimum screenshot width to the expected on-screen icon
// size in pixels. The game renders the stockpile grid at a handful of fixed
// scales, so a coarse tier table is enough. This is an approximation, not a
// measured calibration; a stronger implementation would locate a reference
// icon and measure it directly, keeping this table as the fallback when no
// reference is found.
type iconSizeTier struct {
	minWidth int
	iconSize int
}

var iconSizeTiers = []iconSizeTier{
	{minWidth: 3840, iconSize: 128},
	{minWidth: 2560, iconSize: 85},
}

// defaultIconSize covers 1080p-class screenshots and anything smaller.
const defaultIconSize = 64

// CalibrateIconSize estimates the icon pixel size for a screenshot of the
// given width. Widths outside the known tiers fall back to the default tier.
func CalibrateIconSize(imageWidth int) int {
	for _, t := range iconSizeTiers {
		if imageWidth >= t.minWidth {
			return t.iconSize
		}
	}
	return defaultIconSize
}
