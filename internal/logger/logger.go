package logger

import (
	"github.com/fatih/color" // Colored console output for each log level
)

// Colorized printing functions for the console, one per level.
// They behave like fmt.Printf. Callers prefix messages with an emoji
// (✅ success, ❌ failure, 🌐 domains, 🚀 deploy, ...) so the run reads as a
// checklist in the terminal.

// Info logs progress and success lines in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs non-fatal problems in bright magenta, e.g. a failed status check.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs failures in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Plain prints command echoes and captured tool output without color.
var Plain = color.New(color.Reset).PrintfFunc()

// Debug logs debug messages in cyan once enabled through Init.
// Until then it is a no-op so packages can log before the CLI has parsed flags.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
// When enabled, Debug prints cyan messages; otherwise it silently drops them.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
