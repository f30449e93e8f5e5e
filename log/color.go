package log

import "github.com/fatih/color"

var levelColors = map[LogLevel]color.Attribute{
	Debug: color.FgBlue,
	Info:  color.FgGreen,
	Warn:  color.FgYellow,
	Error: color.FgRed,
	Fatal: color.FgMagenta,
}

// Paint wraps text in the colour of level. The caller decides whether colour is
// wanted, so NO_COLOR and TTY detection of the color package are bypassed.
func Paint(level LogLevel, text string) string {
	attr, ok := levelColors[level]
	if !ok {
		return text
	}

	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}
