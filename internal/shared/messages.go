package shared

import "fmt"

// Success renders a "✓"-prefixed confirmation line.
func Success(format string, args ...any) string {
	return SuccessStyle.Render(CheckMark + " " + fmt.Sprintf(format, args...))
}

// Warning renders a "⚠"-prefixed advisory line.
func Warning(format string, args ...any) string {
	return WarningStyle.Render(WarningMark + " " + fmt.Sprintf(format, args...))
}

// Failure renders an unprefixed error line.
func Failure(format string, args ...any) string {
	return ErrorStyle.Render(fmt.Sprintf(format, args...))
}

// Info renders a plain progress line.
func Info(format string, args ...any) string {
	return InfoStyle.Render(fmt.Sprintf(format, args...))
}
