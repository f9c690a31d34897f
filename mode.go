package molmap

// Mode selects which signal the render call depicts. It governs whether the
// weight field is drawn at all (prediction mode draws only the bare
// molecule) and the caption label.
type Mode string

const (
	ModePrediction Mode = "pred"
	ModeAleatoric  Mode = "ale"
	ModeEpistemic  Mode = "epi"
	ModeTotal      Mode = "total"
)

// CaptionPrefix returns the caption label for the mode. Anything outside
// the three uncertainty modes and prediction falls back to "Total".
func (m Mode) CaptionPrefix() string {
	switch m {
	case ModePrediction:
		return "Prediction"
	case ModeAleatoric:
		return "Aleatoric"
	case ModeEpistemic:
		return "Epistemic"
	}
	return "Total"
}

// ParseMode maps a mode tag to a Mode, defaulting to total uncertainty for
// unknown tags (the fallback caption branch).
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModePrediction, ModeAleatoric, ModeEpistemic:
		return Mode(s)
	}
	return ModeTotal
}

// Format selects the output surface.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates an output-format tag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatPNG:
		return Format(s), nil
	}
	return "", &UnsupportedFormatError{Format: s}
}

// UnsupportedFormatError reports an output-format tag that is neither
// vector nor raster.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported output format \"" + e.Format + "\" (want svg or png)"
}
