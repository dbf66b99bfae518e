package controllers

import (
	"errors"
	"io"
	"net/http"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// AnalysisController exposes the raw analysis proxy: it forwards the photo
// to the AI webhook and returns whatever JSON came back, without persisting
// anything. The save decision stays with the client.
type AnalysisController struct {
	Analyzer *services.AnalyzerService
}

func NewAnalysisController(analyzer *services.AnalyzerService) *AnalysisController {
	return &AnalysisController{Analyzer: analyzer}
}

func (h *AnalysisController) UploadAnalysis(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: image or userId"})
		return
	}
	defer file.Close()

	userID := c.PostForm("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: image or userId"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := utils.ValidateImageFile(contentType, header.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read uploaded file"})
		return
	}

	raw, err := h.Analyzer.Analyze(c.Request.Context(), image, header.Filename, contentType, userID)
	if err != nil {
		status, msg := analyzerStatus(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    raw,
		"message": "Analysis completed successfully",
	})
}

// analyzerStatus maps gateway failures onto the upload endpoint's contract:
// 408 timeout, 502 upstream trouble, 500 otherwise.
func analyzerStatus(err error) (int, string) {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrAnalyzerTimeout):
		return http.StatusRequestTimeout, "Request timeout - analyzer webhook took too long to respond"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, upstream.Error()
	case errors.Is(err, services.ErrMalformedResponse):
		return http.StatusInternalServerError, "Invalid JSON response from analyzer webhook"
	default:
		return http.StatusBadGateway, "Failed to connect to analyzer webhook"
	}
}
