package insight

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/pkg/pagination"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"gorm.io/gorm"
)

var validCategories = map[string]bool{
	models.CategoryPainPoint:      true,
	models.CategoryFeatureRequest: true,
	models.CategoryPositive:       true,
	models.CategorySuggestion:     true,
}

// CreateDTO is a manually added insight. Manual insights survive reprocessing.
type CreateDTO struct {
	InterviewID     string  `json:"interview_id" binding:"required"`
	Category        string  `json:"category"     binding:"required"`
	Title           string  `json:"title"        binding:"required"`
	Quote           string  `json:"quote"`
	ThemeSuggestion *string `json:"theme_suggestion"`
	Sentiment       *string `json:"sentiment"`
}

// UpdateDTO carries partial edits. Nil fields are left untouched.
type UpdateDTO struct {
	Category        *string `json:"category"`
	Title           *string `json:"title"`
	Quote           *string `json:"quote"`
	ThemeSuggestion *string `json:"theme_suggestion"`
	Sentiment       *string `json:"sentiment"`
	IsFlagged       *bool   `json:"is_flagged"`
	IsDismissed     *bool   `json:"is_dismissed"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get fetches an insight owned by the user, or nil.
func (s *Service) Get(userID, id string) (*models.InsightModel, error) {
	var row models.InsightModel
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create adds a manual insight to one of the user's interviews.
func (s *Service) Create(userID string, dto *CreateDTO) (*models.InsightModel, error) {
	if !validCategories[dto.Category] {
		return nil, errors.New("invalid category")
	}

	var interview models.InterviewModel
	err := s.db.Where("id = ? AND user_id = ?", dto.InterviewID, userID).First(&interview).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("interview not found")
	}
	if err != nil {
		return nil, err
	}

	row := models.InsightModel{
		UserID:          userID,
		InterviewID:     dto.InterviewID,
		Category:        dto.Category,
		Title:           dto.Title,
		Quote:           dto.Quote,
		ThemeSuggestion: dto.ThemeSuggestion,
		Sentiment:       dto.Sentiment,
		Confidence:      1.0,
		IsManual:        true,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial edit.
func (s *Service) Update(userID, id string, dto *UpdateDTO) (*models.InsightModel, error) {
	row, err := s.Get(userID, id)
	if err != nil || row == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Category != nil {
		if !validCategories[*dto.Category] {
			return nil, errors.New("invalid category")
		}
		updates["category"] = *dto.Category
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Quote != nil {
		updates["quote"] = *dto.Quote
	}
	if dto.ThemeSuggestion != nil {
		updates["theme_suggestion"] = *dto.ThemeSuggestion
	}
	if dto.Sentiment != nil {
		updates["sentiment"] = *dto.Sentiment
	}
	if dto.IsFlagged != nil {
		updates["is_flagged"] = *dto.IsFlagged
	}
	if dto.IsDismissed != nil {
		updates["is_dismissed"] = *dto.IsDismissed
	}
	if len(updates) == 0 {
		return row, nil
	}

	if err := s.db.Model(row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes an insight permanently.
func (s *Service) Delete(userID, id string) (bool, error) {
	row, err := s.Get(userID, id)
	if err != nil || row == nil {
		return false, err
	}
	if err := s.db.Delete(row).Error; err != nil {
		return false, err
	}
	return true, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/insights", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.POST("/:id/dismiss", h.dismiss)
	g.POST("/:id/restore", h.restore)
	g.DELETE("/:id", h.delete)
}

// GET /insights [auth]
// Filters: category, interview_id, theme_id, flagged, include_dismissed.
func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	db := h.svc.db.Model(&models.InsightModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if v := c.Query("category"); v != "" {
		db = db.Where("category = ?", v)
	}
	if v := c.Query("interview_id"); v != "" {
		db = db.Where("interview_id = ?", v)
	}
	if v := c.Query("theme_id"); v != "" {
		db = db.Where("theme_id = ?", v)
	}
	if c.Query("flagged") == "true" {
		db = db.Where("is_flagged = ?", true)
	}
	if c.Query("include_dismissed") != "true" {
		db = db.Where("is_dismissed = ?", false)
	}

	var rows []models.InsightModel
	meta, err := pagination.Paginate(db, pagination.FromContext(c), &rows)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, rows, meta)
}

// POST /insights [auth]
func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, row)
}

// GET /insights/:id [auth]
func (h *Handler) get(c *gin.Context) {
	row, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
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

// PATCH /insights/:id [auth]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
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

// POST /insights/:id/dismiss [auth]
func (h *Handler) dismiss(c *gin.Context) {
	h.setDismissed(c, true)
}

// POST /insights/:id/restore [auth]
func (h *Handler) restore(c *gin.Context) {
	h.setDismissed(c, false)
}

func (h *Handler) setDismissed(c *gin.Context, dismissed bool) {
	v := dismissed
	row, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &UpdateDTO{IsDismissed: &v})
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

// DELETE /insights/:id [auth]
func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}
