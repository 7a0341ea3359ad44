package api

const (
	// StatusIdle is the status line before any file is chosen.
	StatusIdle = "Select a PDF file"

	// StatusSelected is shown once a path is set.
	StatusSelected = "PDF file selected"

	// StatusWorking is shown while a job for the selection is queued or running.
	StatusWorking = "Removing last page..."

	// StatusDone is shown after a successful job.
	StatusDone = "Last page removed"

	// StatusWarning is shown when nothing could be removed.
	StatusWarning = "Nothing removed"

	// StatusFailed is shown after a failed job.
	StatusFailed = "An error occurred"
)
