package theme

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/modules/synthesis"
	"github.com/deepjyoti31/spec10x/internal/pkg/pagination"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"gorm.io/gorm"
)

// RenameDTO changes a theme's display name. The normalized grouping key
// follows the new name so future synthesis runs keep matching it.
type RenameDTO struct {
	Name string `json:"name" binding:"required"`
}

// MergeDTO folds another theme's insights into this one.
type MergeDTO struct {
	SourceThemeID string `json:"source_theme_id" binding:"required"`
}

type themeDetail struct {
	*models.ThemeModel
	Insights []models.InsightModel `json:"insights"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get fetches a theme owned by the user, or nil.
func (s *Service) Get(userID, id string) (*models.ThemeModel, error) {
	var row models.ThemeModel
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Rename updates display name and grouping key.
func (s *Service) Rename(userID, id string, name string) (*models.ThemeModel, error) {
	row, err := s.Get(userID, id)
	if err != nil || row == nil {
		return nil, err
	}

	normalized := synthesis.NormalizeThemeName(name)
	if normalized == "" {
		return nil, errors.New("name must not be blank")
	}

	err = s.db.Model(row).Updates(map[string]interface{}{
		"name":            name,
		"normalized_name": normalized,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a theme with that name already exists")
		}
		return nil, err
	}
	row.Name = name
	row.NormalizedName = normalized
	return row, nil
}

// Merge moves all insights from the source theme into the target and demotes
// the source. Counts are summed; sentiment splits are recomputed on the next
// synthesis run.
func (s *Service) Merge(userID, targetID, sourceID string) (*models.ThemeModel, error) {
	if targetID == sourceID {
		return nil, errors.New("cannot merge a theme into itself")
	}

	target, err := s.Get(userID, targetID)
	if err != nil || target == nil {
		return nil, err
	}
	source, err := s.Get(userID, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("source theme not found")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InsightModel{}).
			Where("theme_id = ? AND user_id = ?", sourceID, userID).
			Update("theme_id", targetID).Error; err != nil {
			return err
		}
		if err := tx.Model(target).Updates(map[string]interface{}{
			"mention_count": target.MentionCount + source.MentionCount,
			"last_activity": now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(source).Updates(map[string]interface{}{
			"status":        models.ThemePrevious,
			"mention_count": 0,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, targetID)
}

// MarkSeen clears the new-theme badge.
func (s *Service) MarkSeen(userID, id string) (*models.ThemeModel, error) {
	row, err := s.Get(userID, id)
	if err != nil || row == nil {
		return nil, err
	}
	if err := s.db.Model(row).Update("is_new", false).Error; err != nil {
		return nil, err
	}
	row.IsNew = false
	return row, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/themes", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.rename)
	g.POST("/:id/merge", h.merge)
	g.POST("/:id/seen", h.markSeen)
}

// GET /themes [auth]
// Filters: status (default active), is_new.
func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	status := c.DefaultQuery("status", models.ThemeActive)
	db := h.svc.db.Model(&models.ThemeModel{}).
		Where("user_id = ?", userID).
		Order("mention_count DESC")
	if status != "all" {
		db = db.Where("status = ?", status)
	}
	if c.Query("is_new") == "true" {
		db = db.Where("is_new = ?", true)
	}

	var rows []models.ThemeModel
	meta, err := pagination.Paginate(db, pagination.FromContext(c), &rows)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, rows, meta)
}

// GET /themes/:id [auth]
// Returns the theme with its non-dismissed insights.
func (h *Handler) get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	row, err := h.svc.Get(userID, c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if row == nil {
		response.NotFound(c)
		return
	}

	var insights []models.InsightModel
	err = h.svc.db.
		Where("theme_id = ? AND user_id = ? AND is_dismissed = ?", row.ID, userID, false).
		Order("confidence DESC").
		Find(&insights).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, themeDetail{ThemeModel: row, Insights: insights})
}

// PATCH /themes/:id [auth]
func (h *Handler) rename(c *gin.Context) {
	var dto RenameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.svc.Rename(middleware.CurrentUserID(c), c.Param("id"), dto.Name)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if row == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, row)
}

// POST /themes/:id/merge [auth]
func (h *Handler) merge(c *gin.Context) {
	var dto MergeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.svc.Merge(middleware.CurrentUserID(c), c.Param("id"), dto.SourceThemeID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if row == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, row)
}

// POST /themes/:id/seen [auth]
func (h *Handler) markSeen(c *gin.Context) {
	row, err := h.svc.MarkSeen(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if row == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, row)
}
