package draw

// Color is a palette index for canvas pixels and overlay text.
// The zero value is "no pixel".
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorCyan
	ColorRose
	ColorGreen
	ColorPurple
	ColorYellow
	ColorDim
	ColorDimCyan
	ColorDimRose
)

// ANSI SGR sequences.
const (
	ColorReset = "\033[0m"
	Bold       = "\033[1m"
)

var fgCodes = [...]string{
	ColorNone:    "39",
	ColorWhite:   "97",
	ColorCyan:    "96",
	ColorRose:    "91",
	ColorGreen:   "92",
	ColorPurple:  "95",
	ColorYellow:  "93",
	ColorDim:     "90",
	ColorDimCyan: "36",
	ColorDimRose: "31",
}

var bgCodes = [...]string{
	ColorNone:    "49",
	ColorWhite:   "107",
	ColorCyan:    "106",
	ColorRose:    "101",
	ColorGreen:   "102",
	ColorPurple:  "105",
	ColorYellow:  "103",
	ColorDim:     "100",
	ColorDimCyan: "46",
	ColorDimRose: "41",
}

func (c Color) fg() string {
	if int(c) < len(fgCodes) {
		return fgCodes[c]
	}
	return fgCodes[ColorNone]
}

func (c Color) bg() string {
	if int(c) < len(bgCodes) {
		return bgCodes[c]
	}
	return bgCodes[ColorNone]
}

// Fg returns the SGR sequence selecting c as the foreground color.
func Fg(c Color) string {
	return "\033[" + c.fg() + "m"
}
