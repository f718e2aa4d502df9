package export

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/export", authMW)
	g.GET("/interviews/:id", h.interview)
	g.GET("/themes", h.themes)
}

// GET /export/interviews/:id?format=md|html [auth]
func (h *Handler) interview(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	id := c.Param("id")

	var row models.InterviewModel
	err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var insights []models.InsightModel
	if err := h.db.Where("interview_id = ?", id).Order("created_at ASC").Find(&insights).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	var speakers []models.SpeakerModel
	if err := h.db.Where("interview_id = ?", id).Order("label ASC").Find(&speakers).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	report := BuildInterviewReport(&row, insights, speakers)
	base := strings.TrimSuffix(row.Filename, filepath.Ext(row.Filename))
	serve(c, report, fmt.Sprintf("%s-report", base))
}

// GET /export/themes?format=md|html [auth]
func (h *Handler) themes(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var themes []models.ThemeModel
	err := h.db.Where("user_id = ? AND status = ?", userID, models.ThemeActive).
		Order("mention_count DESC").
		Find(&themes).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}

	byTheme := map[string][]models.InsightModel{}
	if len(themes) > 0 {
		ids := make([]string, 0, len(themes))
		for _, t := range themes {
			ids = append(ids, t.ID)
		}
		var insights []models.InsightModel
		err := h.db.Where("theme_id IN ? AND is_dismissed = ?", ids, false).
			Order("confidence DESC").
			Find(&insights).Error
		if err != nil {
			response.InternalError(c, err)
			return
		}
		for _, in := range insights {
			if in.ThemeID == nil {
				continue
			}
			byTheme[*in.ThemeID] = append(byTheme[*in.ThemeID], in)
		}
	}

	report := BuildThemesReport(themes, byTheme)
	serve(c, report, "themes-report")
}

// serve writes the report as a markdown or HTML attachment.
func serve(c *gin.Context, markdown, basename string) {
	switch c.DefaultQuery("format", "md") {
	case "html":
		html, err := RenderHTML(markdown)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", basename+".html"))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	case "md":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", basename+".md"))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
	default:
		response.BadRequest(c, "format must be md or html")
	}
}
