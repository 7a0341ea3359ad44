package api

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"pdf_eraser/jobs"
	"pdf_eraser/pdf"
)

// Selection is the UI state: the chosen file and the rename checkbox.
type Selection struct {
	Path         string `json:"path"`
	TrimFilename bool   `json:"trim_filename"`
}

// Inspector summarizes a PDF for the status panel.
type Inspector interface {
	Inspect(path string, trimName bool) (*pdf.Info, error)
}

// Dispatcher runs trim jobs off the request path.
type Dispatcher interface {
	Submit(ctx context.Context, source string, trimName bool) (*jobs.Job, error)
	Get(ctx context.Context, id string) (*jobs.Job, error)
}

// Controller owns the UI state and turns user actions into jobs.
type Controller struct {
	inspector  Inspector
	dispatcher Dispatcher
	log        *logrus.Logger

	mu        sync.RWMutex
	selection Selection
	status    string
	lastJob   string
}

func NewController(inspector Inspector, dispatcher Dispatcher, log *logrus.Logger) *Controller {
	return &Controller{
		inspector:  inspector,
		dispatcher: dispatcher,
		log:        log,
		status:     StatusIdle,
	}
}

// State is a snapshot of the controller for rendering.
type State struct {
	Selection Selection `json:"selection"`
	Status    string    `json:"status"`
	LastJob   string    `json:"last_job,omitempty"`
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{Selection: c.selection, Status: c.status, LastJob: c.lastJob}
}

// Select updates the selection. Nil fields keep their current value.
func (c *Controller) Select(path *string, trimName *bool) Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if path != nil {
		c.selection.Path = cleanPath(*path)
		if c.selection.Path == "" {
			c.status = StatusIdle
		} else {
			c.status = StatusSelected
		}
	}
	if trimName != nil {
		c.selection.TrimFilename = *trimName
	}
	c.log.WithFields(logrus.Fields{
		"path":          c.selection.Path,
		"trim_filename": c.selection.TrimFilename,
	}).Debug("Selection changed")
	return c.selection
}

// Inspect describes the selected file.
func (c *Controller) Inspect(sel Selection) (*pdf.Info, error) {
	return c.inspector.Inspect(sel.Path, sel.TrimFilename)
}

// Trim dispatches a job for sel.
func (c *Controller) Trim(ctx context.Context, sel Selection) (*jobs.Job, error) {
	job, err := c.dispatcher.Submit(ctx, sel.Path, sel.TrimFilename)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastJob = job.ID
	c.status = StatusWorking
	c.mu.Unlock()

	// the worker may have finished before lastJob was recorded
	if cur, err := c.dispatcher.Get(ctx, job.ID); err == nil && cur.Done() {
		c.JobFinished(*cur)
	}
	return job, nil
}

// Job returns the state of a dispatched job.
func (c *Controller) Job(ctx context.Context, id string) (*jobs.Job, error) {
	return c.dispatcher.Get(ctx, id)
}

// JobFinished is the dispatcher's completion hook; it updates the status line
// when the finished job is the latest one.
func (c *Controller) JobFinished(job jobs.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if job.ID != c.lastJob {
		return
	}
	switch job.Status {
	case jobs.StatusCompleted:
		c.status = StatusDone
	case jobs.StatusWarning:
		c.status = StatusWarning
	default:
		c.status = StatusFailed
	}
}

// HasPDFExtension reports whether path looks like a PDF by name. The check is
// advisory only.
func HasPDFExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// cleanPath trims whitespace and the quotes file managers add when copying a path.
func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
