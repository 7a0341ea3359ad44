package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// Options configures a Trimmer.
type Options struct {
	// RelaxedValidation lets pdfcpu accept documents that bend the PDF standard.
	RelaxedValidation bool
}

// Trimmer removes the last page of PDF documents.
type Trimmer struct {
	log  *logrus.Logger
	opts Options
}

// NewTrimmer returns a Trimmer logging to log.
func NewTrimmer(log *logrus.Logger, opts Options) *Trimmer {
	return &Trimmer{log: log, opts: opts}
}

// Result describes a successful trim.
type Result struct {
	SourcePath    string   `json:"source_path"`
	OutputPath    string   `json:"output_path"`
	PagesBefore   int      `json:"pages_before"`
	PagesAfter    int      `json:"pages_after"`
	Metadata      Metadata `json:"metadata"`
	OutlineCopied int      `json:"outline_copied"`
	Warnings      []string `json:"warnings,omitempty"`
}

// configuration returns a fresh pdfcpu configuration; api calls mutate it.
func (t *Trimmer) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if t.opts.RelaxedValidation {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

// Trim writes a copy of sourcePath without its last page next to the source
// and returns where it went. The output name is derived by OutputPath; an
// existing file of that name is replaced. Either the complete output is
// written or nothing is.
func (t *Trimmer) Trim(ctx context.Context, sourcePath string, trimName bool) (*Result, error) {
	log := t.log.WithField("source", sourcePath)

	data, err := readSource(sourcePath)
	if err != nil {
		return nil, err
	}

	src, err := t.parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	n := src.PageCount
	if n <= 1 {
		return nil, fmt.Errorf("%w: %s has %d page(s)", ErrInsufficientPages, sourcePath, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		SourcePath:  sourcePath,
		OutputPath:  OutputPath(sourcePath, trimName),
		PagesBefore: n,
		PagesAfter:  n - 1,
		Metadata:    readMetadata(src),
	}

	dst, err := pdfcpu.ExtractPages(src, keptPages(n), false)
	if err != nil {
		return nil, fmt.Errorf("%w: extracting pages of %s: %w", ErrParse, sourcePath, err)
	}

	if err := copyInfoDict(src, dst); err != nil {
		log.WithError(err).Warn("Failed to copy document metadata")
		res.Warnings = append(res.Warnings, "metadata not copied: "+err.Error())
	}

	var buf bytes.Buffer
	if err := api.WriteContext(dst, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	out := buf.Bytes()

	if hasOutline(src) {
		withOutline, copied, err := t.copyOutline(data, out, n-1)
		switch {
		case err != nil:
			log.WithError(err).Warn("Failed to copy outline, writing output without it")
			res.Warnings = append(res.Warnings, "outline not copied: "+err.Error())
		case withOutline != nil:
			out = withOutline
			res.OutlineCopied = copied
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := atomic.WriteFile(res.OutputPath, bytes.NewReader(out)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, res.OutputPath, err)
	}

	log.WithFields(logrus.Fields{
		"output":         res.OutputPath,
		"pages_before":   res.PagesBefore,
		"pages_after":    res.PagesAfter,
		"outline_copied": res.OutlineCopied,
	}).Info("Removed last page")

	return res, nil
}

// keptPages lists the 1-based page numbers 1..n-1.
func keptPages(n int) []int {
	pages := make([]int, n-1)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// readSource reads path after checking that it names a regular file.
func readSource(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrInvalidInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return data, nil
}

// parse reads and validates data and makes sure the page count is known.
func (t *Trimmer) parse(data []byte) (ctx *model.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	ctx, err = api.ReadValidateAndOptimize(bytes.NewReader(data), t.configuration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ctx, nil
}
