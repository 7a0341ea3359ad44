package pdf

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// OutputPrefix is prepended to every output file name.
	OutputPrefix = "modified_"

	// TrimSuffixLen is the number of trailing base-name characters dropped when trimming is on.
	TrimSuffixLen = 11
)

// SplitExt splits name into base and extension. A name consisting only of
// an extension, such as ".pdf", has no extension.
func SplitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	base = strings.TrimSuffix(name, ext)
	if strings.Trim(base, ".") == "" {
		return name, ""
	}
	return base, ext
}

// OutputName derives the output file name from the source file name.
// With trim set, a base longer than TrimSuffixLen characters loses its last
// TrimSuffixLen characters.
func OutputName(name string, trim bool) string {
	base, ext := SplitExt(name)
	if trim {
		if n := utf8.RuneCountInString(base); n > TrimSuffixLen {
			base = string([]rune(base)[:n-TrimSuffixLen])
		}
	}
	return OutputPrefix + base + ext
}

// OutputPath places OutputName next to sourcePath.
func OutputPath(sourcePath string, trim bool) string {
	dir, name := filepath.Split(sourcePath)
	return filepath.Join(dir, OutputName(name, trim))
}
