package hooks

import "strings"

// FileClass says which tools apply to a file.
type FileClass struct {
	Format bool
	Lint   bool
}

// ClassifyFile matches path by suffix against the format and lint extension
// sets. A file is only lint-eligible when it is also formattable.
func ClassifyFile(path string, formatExts, lintExts []string) FileClass {
	format := hasAnySuffix(path, formatExts)
	return FileClass{
		Format: format,
		Lint:   format && hasAnySuffix(path, lintExts),
	}
}

// HasChangedExtension reports whether any non-empty entry ends in one of exts.
func HasChangedExtension(files, exts []string) bool {
	for _, f := range files {
		if f == "" {
			continue
		}
		if hasAnySuffix(f, exts) {
			return true
		}
	}
	return false
}

// SplitLines splits command output into trimmed, non-empty lines.
func SplitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func hasAnySuffix(path string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
