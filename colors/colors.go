package colors

import "github.com/fatih/color"

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
)

// Status colours an HTTP status code: green for success, blue for
// redirects, red for errors.
func Status(code int) string {
	switch {
	case code >= 400:
		return Red(code)
	case code >= 300:
		return Blue(code)
	}

	return Green(code)
}
