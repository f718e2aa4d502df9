package ask

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/modules/qa"
	"github.com/deepjyoti31/spec10x/internal/modules/usage"
	"github.com/deepjyoti31/spec10x/internal/pkg/pagination"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionDTO is one turn of the research Q&A surface. ConversationID is
// empty for a new conversation.
type QuestionDTO struct {
	Question       string `json:"question" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

type Handler struct {
	db    *gorm.DB
	qa    *qa.Service
	usage *usage.Service
	log   *zap.Logger
}

func NewHandler(db *gorm.DB, qaSvc *qa.Service, us *usage.Service, log *zap.Logger) *Handler {
	return &Handler{db: db, qa: qaSvc, usage: us, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/ask", authMW)
	g.POST("", h.ask)
	g.GET("/conversations", h.listConversations)
	g.GET("/conversations/:id", h.getConversation)
	g.DELETE("/conversations/:id", h.deleteConversation)
}

// POST /ask [auth]
func (h *Handler) ask(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var dto QuestionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(dto.Question) == "" {
		response.BadRequest(c, "question must not be blank")
		return
	}

	var user models.UserModel
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	if err := h.usage.CheckQueryQuota(&user); err != nil {
		if errors.Is(err, usage.ErrQuotaExceeded) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	resp, err := h.qa.Ask(c.Request.Context(), userID, dto.Question, dto.ConversationID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if err := h.usage.RecordQuery(userID); err != nil {
		h.log.Warn("usage tracking failed", zap.String("user_id", userID), zap.Error(err))
	}
	response.OK(c, resp)
}

// GET /ask/conversations [auth]
func (h *Handler) listConversations(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	db := h.db.Model(&models.AskConversationModel{}).
		Where("user_id = ?", userID).
		Order("updated_at DESC")

	var rows []models.AskConversationModel
	meta, err := pagination.Paginate(db, pagination.FromContext(c), &rows)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, rows, meta)
}

// GET /ask/conversations/:id [auth]
// Returns the conversation with its messages in creation order.
func (h *Handler) getConversation(c *gin.Context) {
	conv, err := h.ownedConversation(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if conv == nil {
		response.NotFound(c)
		return
	}

	var messages []models.AskMessageModel
	err = h.db.Where("conversation_id = ?", conv.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"conversation": conv,
		"messages":     messages,
	})
}

// DELETE /ask/conversations/:id [auth]
func (h *Handler) deleteConversation(c *gin.Context) {
	conv, err := h.ownedConversation(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if conv == nil {
		response.NotFound(c)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", conv.ID).Delete(&models.AskMessageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(conv).Error
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) ownedConversation(c *gin.Context) (*models.AskConversationModel, error) {
	var conv models.AskConversationModel
	err := h.db.
		Where("id = ? AND user_id = ?", c.Param("id"), middleware.CurrentUserID(c)).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
