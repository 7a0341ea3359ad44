package pdf

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info summarizes a PDF for display before it is trimmed.
type Info struct {
	Path       string   `json:"path"`
	Pages      int      `json:"pages"`
	Metadata   Metadata `json:"metadata"`
	Bookmarks  int      `json:"bookmarks"`
	CanTrim    bool     `json:"can_trim"`
	OutputName string   `json:"output_name"`
}

// Inspect reads path and reports its page count, metadata and outline size.
// trimName only affects the reported OutputName.
func (t *Trimmer) Inspect(path string, trimName bool) (*Info, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}

	ctx, err := t.parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	info := &Info{
		Path:       path,
		Pages:      ctx.PageCount,
		Metadata:   readMetadata(ctx),
		CanTrim:    ctx.PageCount > 1,
		OutputName: OutputName(filepath.Base(path), trimName),
	}

	if hasOutline(ctx) {
		bms, err := api.Bookmarks(bytes.NewReader(data), t.configuration())
		if err != nil {
			t.log.WithError(err).WithField("source", path).Debug("Cannot read outline")
		} else {
			info.Bookmarks = countBookmarks(bms)
		}
	}

	return info, nil
}
