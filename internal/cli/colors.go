package cli

// ANSI color codes for terminal output.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
)

// ExpiryWarningDays is the threshold below which days remaining is shown
// as a warning.
const ExpiryWarningDays = 30

// DaysColor returns the color for a days-remaining value: red once expired,
// yellow inside the warning window, green otherwise.
func DaysColor(days int) string {
	switch {
	case days < 0:
		return ColorRed
	case days < ExpiryWarningDays:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// Colorize wraps s in color when enabled.
func Colorize(s, color string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + ColorReset
}
