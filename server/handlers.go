package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/propintel/underwrite/pdf"
	"github.com/propintel/underwrite/store"
	"github.com/propintel/underwrite/underwriting"
)

type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

type UnderwriteRequest struct {
	Address     string         `json:"address" binding:"required"`
	Assumptions map[string]any `json:"assumptions"`
}

type UnderwriteResponse struct {
	underwriting.Record
	Summary        underwriting.Risk `json:"summary"`
	Assumptions    map[string]any    `json:"assumptions"`
	ReturnEstimate float64           `json:"returnEstimate"`
}

// ReportRequest renders Record when given, else the mocked record of Address
type ReportRequest struct {
	Address string               `json:"address" binding:"required_without=Record"`
	Record  *underwriting.Record `json:"record"`
}

type HistoryEntry struct {
	Address string `json:"address"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// PropertyInfo returns the property metrics of an address
func (s *Server) PropertyInfo(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, underwriting.MockRecord(req.Address))
}

// Underwrite classifies the risk of an address and records it in the history.
// A failing history store does not fail the request.
func (s *Server) Underwrite(c *gin.Context) {
	var req UnderwriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	record := underwriting.MockRecord(req.Address)
	summary := record.Risk()

	if s.history != nil {
		report := &store.Report{Record: record, Summary: summary.String()}
		if err := s.history.Save(c.Request.Context(), report); err != nil {
			s.log.Errorf("failed to save report for %s: %v", req.Address, err)
		}
	}

	assumptions := req.Assumptions
	if assumptions == nil {
		assumptions = map[string]any{}
	}
	c.JSON(http.StatusOK, UnderwriteResponse{
		Record:         record,
		Summary:        summary,
		Assumptions:    assumptions,
		ReturnEstimate: s.config.ReturnEstimate,
	})
}

// Report renders the PDF report as an attachment. The document is completed
// in memory first so a failed render never reaches the client as a partial
// file.
func (s *Server) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	record := underwriting.MockRecord(req.Address)
	if req.Record != nil {
		record = *req.Record
		if record.Address == "" {
			record.Address = req.Address
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, record); err != nil {
		var fields validator.ValidationErrors
		switch {
		case errors.As(err, &fields), pdf.IsLayoutError(err):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			s.log.Errorf("failed to render report for %s: %v", record.Address, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to render report"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+underwriting.ReportFilename+`"`)
	c.Data(http.StatusOK, pdf.ContentType, buf.Bytes())
}

// History lists the most recent underwriting runs. Store failures yield an
// empty list.
func (s *Server) History(c *gin.Context) {
	entries := []HistoryEntry{}
	if s.history == nil {
		c.JSON(http.StatusOK, entries)
		return
	}

	reports, err := s.history.Recent(c.Request.Context(), s.config.HistoryLimit)
	if err != nil {
		s.log.Errorf("failed to load history: %v", err)
		c.JSON(http.StatusOK, entries)
		return
	}
	for _, r := range reports {
		entries = append(entries, HistoryEntry{
			Address: r.Record.Address,
			Date:    r.CreatedAt.UTC().Format("2006-01-02"),
			Summary: r.Summary,
		})
	}
	c.JSON(http.StatusOK, entries)
}
