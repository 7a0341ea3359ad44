package pdf

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Error classes surfaced by Trim and Inspect. Callers test them with errors.Is.
var (
	// ErrInvalidInput means the source path is missing, unreadable or not a regular file.
	ErrInvalidInput = errors.New("invalid input file")

	// ErrParse means the source could not be parsed as a PDF.
	ErrParse = errors.New("cannot parse PDF")

	// ErrInsufficientPages means the document has one page or none, so there is nothing to remove.
	ErrInsufficientPages = errors.New("PDF has one page or fewer")

	// ErrWrite means the output file could not be written.
	ErrWrite = errors.New("cannot write output PDF")
)

// OutcomeKind is the severity shown to the user.
type OutcomeKind string

const (
	OutcomeInfo    OutcomeKind = "info"
	OutcomeWarning OutcomeKind = "warning"
	OutcomeError   OutcomeKind = "error"
)

// Outcome is the single user-facing message a trim run ends with.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Message    string      `json:"message"`
	OutputPath string      `json:"output_path,omitempty"`
}

// Classify converts the result of Trim into an Outcome.
func Classify(res *Result, err error) Outcome {
	switch {
	case err == nil && res != nil:
		return Outcome{
			Kind:       OutcomeInfo,
			Message:    fmt.Sprintf("new PDF saved: %s", res.OutputPath),
			OutputPath: res.OutputPath,
		}
	case err == nil:
		return Outcome{Kind: OutcomeError, Message: "no result produced"}
	case errors.Is(err, ErrInsufficientPages):
		return Outcome{Kind: OutcomeWarning, Message: "the PDF has one page or fewer; nothing was removed"}
	default:
		return Outcome{Kind: OutcomeError, Message: truncateMessage(err.Error())}
	}
}

// maxMessageLen bounds error text relayed to the UI.
const maxMessageLen = 200

// truncateMessage cuts msg to at most maxMessageLen bytes on a rune boundary.
func truncateMessage(msg string) string {
	if len(msg) <= maxMessageLen {
		return msg
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + "..."
}
