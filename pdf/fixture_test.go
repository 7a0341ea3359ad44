package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// testDoc describes a generated PDF: pages numbered 1..pages, an info
// dictionary, and optionally one bookmark per page titled "Page <n>".
type testDoc struct {
	pages   int
	info    map[string]string
	outline bool
}

// pageMark is the content stream of page n; every page draws a different rectangle.
func pageMark(n int) string {
	return fmt.Sprintf("q 0 0 0 rg 10 10 %d 20 re f Q", 10*n)
}

// build renders d as a classic xref-table PDF.
func (d testDoc) build() []byte {
	const (
		catalogObj  = 1
		pagesObj    = 2
		infoObj     = 3
		outlinesObj = 4
	)
	pageObj := func(i int) int { return 5 + 2*(i-1) }
	contentObj := func(i int) int { return 6 + 2*(i-1) }
	itemObj := func(i int) int { return 5 + 2*d.pages + (i - 1) }

	objs := map[int]string{}

	catalog := fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R", pagesObj)
	if d.outline && d.pages > 0 {
		catalog += fmt.Sprintf(" /Outlines %d 0 R /PageMode /UseOutlines", outlinesObj)
	}
	objs[catalogObj] = catalog + " >>"

	kids := make([]string, d.pages)
	for i := 1; i <= d.pages; i++ {
		kids[i-1] = fmt.Sprintf("%d 0 R", pageObj(i))
		objs[pageObj(i)] = fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 200 200] /Resources << >> /Contents %d 0 R >>",
			pagesObj, contentObj(i))
		content := pageMark(i)
		objs[contentObj(i)] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
	}
	objs[pagesObj] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), d.pages)

	keys := make([]string, 0, len(d.info))
	for k := range d.info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var info strings.Builder
	info.WriteString("<<")
	for _, k := range keys {
		fmt.Fprintf(&info, " /%s (%s)", k, d.info[k])
	}
	info.WriteString(" >>")
	objs[infoObj] = info.String()

	if d.outline && d.pages > 0 {
		objs[outlinesObj] = fmt.Sprintf("<< /Type /Outlines /First %d 0 R /Last %d 0 R /Count %d >>",
			itemObj(1), itemObj(d.pages), d.pages)
		for i := 1; i <= d.pages; i++ {
			item := fmt.Sprintf("<< /Title (Page %d) /Parent %d 0 R /Dest [%d 0 R /Fit]", i, outlinesObj, pageObj(i))
			if i > 1 {
				item += fmt.Sprintf(" /Prev %d 0 R", itemObj(i-1))
			}
			if i < d.pages {
				item += fmt.Sprintf(" /Next %d 0 R", itemObj(i+1))
			}
			objs[itemObj(i)] = item + " >>"
		}
	} else {
		objs[outlinesObj] = "null"
	}

	size := len(objs) + 1
	offsets := make([]int, size)
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	for n := 1; n < size; n++ {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, objs[n])
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n < size; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		size, catalogObj, infoObj, xref)
	return buf.Bytes()
}

// writeDoc writes d into dir under name and returns the path.
func writeDoc(t *testing.T, dir, name string, d testDoc) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.build(), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func newTestTrimmer() *Trimmer {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewTrimmer(log, Options{})
}
