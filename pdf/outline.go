package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// hasOutline reports whether the document catalog carries an Outlines entry.
func hasOutline(ctx *model.Context) bool {
	root, err := ctx.Catalog()
	if err != nil || root == nil {
		return false
	}
	_, found := root.Find("Outlines")
	return found
}

// keepBookmarks returns the bookmarks whose target page is within 1..lastPage.
// A bookmark targeting a removed page takes its kids with it; the kept kids
// of a bookmark without a target move up to its level.
func keepBookmarks(bms []pdfcpu.Bookmark, lastPage int) []pdfcpu.Bookmark {
	var kept []pdfcpu.Bookmark
	for _, bm := range bms {
		if bm.PageFrom < 1 {
			kept = append(kept, keepBookmarks(bm.Kids, lastPage)...)
			continue
		}
		if bm.PageFrom > lastPage {
			continue
		}
		b := bm
		if b.PageThru > lastPage {
			b.PageThru = lastPage
		}
		b.Kids = keepBookmarks(bm.Kids, lastPage)
		kept = append(kept, b)
	}
	return kept
}

func countBookmarks(bms []pdfcpu.Bookmark) int {
	n := len(bms)
	for _, bm := range bms {
		n += countBookmarks(bm.Kids)
	}
	return n
}

// copyOutline reads the outline of the source document and adds the part
// still pointing at kept pages to the trimmed document. It returns the
// trimmed document with its outline and the number of bookmarks carried over.
func (t *Trimmer) copyOutline(source, trimmed []byte, lastPage int) ([]byte, int, error) {
	bms, err := api.Bookmarks(bytes.NewReader(source), t.configuration())
	if err != nil {
		return nil, 0, err
	}
	kept := keepBookmarks(bms, lastPage)
	if len(kept) == 0 {
		return nil, 0, nil
	}

	var buf bytes.Buffer
	if err := api.AddBookmarks(bytes.NewReader(trimmed), &buf, kept, true, t.configuration()); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), countBookmarks(kept), nil
}
