package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdf_eraser/jobs"
	"pdf_eraser/pdf"
)

// selectionRequest updates only the fields it carries.
type selectionRequest struct {
	Path         *string `json:"path"`
	TrimFilename *bool   `json:"trim_filename"`
}

// selectionResponse is the status panel: the selection plus what is known about the file.
type selectionResponse struct {
	State
	Info         *pdf.Info `json:"info,omitempty"`
	InspectError string    `json:"inspect_error,omitempty"`
	Warning      string    `json:"warning,omitempty"`
}

func HandleIndex(c *gin.Context, ctrl *Controller) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": "Remove last PDF page",
		"state": ctrl.State(),
	})
}

func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pdf_eraser",
	})
}

func HandleGetSelection(c *gin.Context, ctrl *Controller) {
	c.JSON(http.StatusOK, describe(ctrl, ctrl.State()))
}

func HandleSelect(c *gin.Context, ctrl *Controller) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selection: " + err.Error()})
		return
	}

	ctrl.Select(req.Path, req.TrimFilename)
	c.JSON(http.StatusOK, describe(ctrl, ctrl.State()))
}

// describe inspects the selected file, if any, for the status panel.
func describe(ctrl *Controller, state State) selectionResponse {
	resp := selectionResponse{State: state}
	if state.Selection.Path == "" {
		return resp
	}
	if !HasPDFExtension(state.Selection.Path) {
		resp.Warning = "The selected file does not have a .pdf extension"
	}

	info, err := ctrl.Inspect(state.Selection)
	if err != nil {
		resp.InspectError = pdf.Classify(nil, err).Message
		return resp
	}
	resp.Info = info
	if !info.CanTrim {
		resp.Warning = "The PDF has one page or fewer; nothing can be removed"
	}
	return resp
}

func HandleTrim(c *gin.Context, ctrl *Controller) {
	sel := ctrl.State().Selection

	// A body, if present, replaces the stored selection for this request.
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Path != nil || req.TrimFilename != nil {
		sel = ctrl.Select(req.Path, req.TrimFilename)
	}

	job, err := ctrl.Trim(c.Request.Context(), sel)
	switch {
	case errors.Is(err, jobs.ErrNoSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid PDF file"})
		return
	case errors.Is(err, jobs.ErrQueueFull), errors.Is(err, jobs.ErrStopped):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start job"})
		return
	}

	c.JSON(http.StatusAccepted, job)
}

func HandleJob(c *gin.Context, ctrl *Controller) {
	job, err := ctrl.Job(c.Request.Context(), c.Param("id"))
	if errors.Is(err, jobs.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		return
	}
	c.JSON(http.StatusOK, job)
}
