package server

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/molmap/molmap"
)

// RenderRequest is the JSON body for POST /api/render.
type RenderRequest struct {
	SMILES  string    `json:"smiles" binding:"required"`
	Summary float64   `json:"summary"`
	Weights []float64 `json:"weights"`
	Mode    string    `json:"mode"`
	Format  string    `json:"format"`
}

// RenderResponse carries the finished artifact: raw SVG text for vector
// output, a base64 PNG data URI for raster.
type RenderResponse struct {
	ID     string `json:"id"`
	Format string `json:"format"`
	Image  string `json:"image"`
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRender(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	format := molmap.FormatSVG
	if req.Format != "" {
		f, err := molmap.ParseFormat(req.Format)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		format = f
	}
	mode := molmap.ParseMode(req.Mode)

	out, err := s.rend.Render(req.SMILES, req.Summary, req.Weights, mode, format)
	if err != nil {
		status := http.StatusInternalServerError
		if isCallerError(err) {
			status = http.StatusBadRequest
		}
		s.log.Warn("render failed",
			zap.String("smiles", req.SMILES),
			zap.String("mode", string(mode)),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New().String()
	resp := RenderResponse{ID: id, Format: string(format)}
	if format == molmap.FormatPNG {
		resp.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(out)
	} else {
		resp.Image = string(out)
	}
	s.log.Info("rendered",
		zap.String("id", id),
		zap.String("format", string(format)),
		zap.Int("bytes", len(out)))
	c.JSON(http.StatusOK, resp)
}

// isCallerError classifies the render error taxonomy: everything the
// caller supplied badly maps to 400.
func isCallerError(err error) bool {
	var (
		parseErr  *molmap.StructureParseError
		atomsErr  *molmap.InsufficientAtomsError
		weightErr *molmap.WeightCountMismatchError
		scaleErr  *molmap.UnsupportedColorScaleError
		formatErr *molmap.UnsupportedFormatError
	)
	return errors.As(err, &parseErr) ||
		errors.As(err, &atomsErr) ||
		errors.As(err, &weightErr) ||
		errors.As(err, &scaleErr) ||
		errors.As(err, &formatErr)
}
