package usage

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/config"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrQuotaExceeded is returned when a free-plan monthly limit is hit.
var ErrQuotaExceeded = errors.New("monthly quota exceeded, upgrade your plan to continue")

type Service struct {
	db     *gorm.DB
	limits config.Limits
}

func NewService(db *gorm.DB, limits config.Limits) *Service {
	return &Service{db: db, limits: limits}
}

func currentMonth() string { return time.Now().UTC().Format("2006-01") }

// Current returns this month's counters for the user, zeroed if absent.
func (s *Service) Current(userID string) (*models.UsageModel, error) {
	month := currentMonth()

	var row models.UsageModel
	err := s.db.Where("user_id = ? AND month = ?", userID, month).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UsageModel{UserID: userID, Month: month}, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CheckInterviewQuota rejects the upload when a free-plan user is at the
// monthly interview limit. Paid plans are unmetered.
func (s *Service) CheckInterviewQuota(user *models.UserModel) error {
	if user.Plan != models.PlanFree {
		return nil
	}
	row, err := s.Current(user.ID)
	if err != nil {
		return err
	}
	if row.InterviewsUploaded >= s.limits.FreeInterviewsPerMonth {
		return ErrQuotaExceeded
	}
	return nil
}

// CheckQueryQuota rejects the question when a free-plan user is at the
// monthly ask limit.
func (s *Service) CheckQueryQuota(user *models.UserModel) error {
	if user.Plan != models.PlanFree {
		return nil
	}
	row, err := s.Current(user.ID)
	if err != nil {
		return err
	}
	if row.QAQueriesUsed >= s.limits.FreeQueriesPerMonth {
		return ErrQuotaExceeded
	}
	return nil
}

// RecordInterview bumps the upload counter and storage total for this month.
func (s *Service) RecordInterview(userID string, sizeBytes int64) error {
	return s.bump(userID, func(row *models.UsageModel) {
		row.InterviewsUploaded++
		row.StorageBytesUsed += sizeBytes
	})
}

// RecordQuery bumps the ask counter for this month.
func (s *Service) RecordQuery(userID string) error {
	return s.bump(userID, func(row *models.UsageModel) {
		row.QAQueriesUsed++
	})
}

// bump applies fn to the month row, inserting it first if missing. The unique
// (user_id, month) index turns a create race into a retryable update.
func (s *Service) bump(userID string, fn func(*models.UsageModel)) error {
	month := currentMonth()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var row models.UsageModel
		err := tx.Where("user_id = ? AND month = ?", userID, month).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.UsageModel{UserID: userID, Month: month}
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					if err := tx.Where("user_id = ? AND month = ?", userID, month).First(&row).Error; err != nil {
						return err
					}
				} else {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		fn(&row)
		return tx.Save(&row).Error
	})
}

type usageResponse struct {
	Month              string `json:"month"`
	InterviewsUploaded int    `json:"interviews_uploaded"`
	InterviewsLimit    int    `json:"interviews_limit"`
	QAQueriesUsed      int    `json:"qa_queries_used"`
	QAQueriesLimit     int    `json:"qa_queries_limit"`
	StorageBytesUsed   int64  `json:"storage_bytes_used"`
	Plan               string `json:"plan"`
}

type Handler struct {
	svc *Service
	db  *gorm.DB
}

func NewHandler(svc *Service, db *gorm.DB) *Handler {
	return &Handler{svc: svc, db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/usage", authMW, h.get)
}

// GET /usage [auth]
func (h *Handler) get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var user models.UserModel
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	row, err := h.svc.Current(userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	resp := usageResponse{
		Month:              row.Month,
		InterviewsUploaded: row.InterviewsUploaded,
		QAQueriesUsed:      row.QAQueriesUsed,
		StorageBytesUsed:   row.StorageBytesUsed,
		Plan:               user.Plan,
	}
	if user.Plan == models.PlanFree {
		resp.InterviewsLimit = h.svc.limits.FreeInterviewsPerMonth
		resp.QAQueriesLimit = h.svc.limits.FreeQueriesPerMonth
	} else {
		resp.InterviewsLimit = -1
		resp.QAQueriesLimit = -1
	}
	response.OK(c, resp)
}
