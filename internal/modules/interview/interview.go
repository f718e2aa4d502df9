package interview

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/modules/pipeline"
	"github.com/deepjyoti31/spec10x/internal/modules/usage"
	"github.com/deepjyoti31/spec10x/internal/pkg/pagination"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"github.com/deepjyoti31/spec10x/internal/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxUploadBytes caps transcript and media uploads at 100 MiB.
const maxUploadBytes = 100 << 20

var errDuplicateFile = errors.New("this file was already uploaded")

// TextUploadDTO is the JSON path for pasting a transcript directly.
type TextUploadDTO struct {
	Filename   string `json:"filename"`
	Transcript string `json:"transcript" binding:"required"`
}

type Service struct {
	db       *gorm.DB
	store    *storage.Uploader
	pipeline *pipeline.Service
	usage    *usage.Service
	log      *zap.Logger
}

func NewService(db *gorm.DB, store *storage.Uploader, pl *pipeline.Service, us *usage.Service, log *zap.Logger) *Service {
	return &Service{db: db, store: store, pipeline: pl, usage: us, log: log}
}

// CreateFromText stores a pasted transcript and queues processing.
func (s *Service) CreateFromText(c *gin.Context, userID string, dto *TextUploadDTO) (*models.InterviewModel, error) {
	filename := strings.TrimSpace(dto.Filename)
	if filename == "" {
		filename = "pasted-transcript.txt"
	}
	data := []byte(dto.Transcript)
	return s.create(c, userID, filename, pipeline.FileTypeTxt, data, dto.Transcript)
}

// CreateFromFile ingests an uploaded file and queues processing.
func (s *Service) CreateFromFile(c *gin.Context, userID string, header *multipart.FileHeader) (*models.InterviewModel, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !pipeline.IsAllowedFileType(ext) {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if header.Size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d MB upload limit", maxUploadBytes>>20)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d MB upload limit", maxUploadBytes>>20)
	}

	return s.create(c, userID, header.Filename, ext, data, "")
}

func (s *Service) create(c *gin.Context, userID, filename, fileType string, data []byte, transcript string) (*models.InterviewModel, error) {
	hash := pipeline.ComputeFileHash(data)

	var existing models.InterviewModel
	err := s.db.Where("user_id = ? AND file_hash = ?", userID, hash).First(&existing).Error
	if err == nil {
		return &existing, errDuplicateFile
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	interview := models.InterviewModel{
		UserID:        userID,
		Filename:      filename,
		FileType:      fileType,
		FileSizeBytes: int64(len(data)),
		Status:        models.InterviewQueued,
		Transcript:    transcript,
		FileHash:      hash,
	}

	if err := s.db.Create(&interview).Error; err != nil {
		return nil, err
	}

	// Media files go to object storage so the pipeline worker can fetch
	// them later. Text transcripts already live on the row.
	if s.store != nil && transcript == "" {
		key := fmt.Sprintf("interviews/%s/%s/%s", userID, interview.ID, filename)
		if _, err := s.store.Upload(c.Request.Context(), key, data, contentTypeFor(fileType)); err != nil {
			s.log.Warn("upload to object storage failed, keeping row without storage path",
				zap.String("interview_id", interview.ID), zap.Error(err))
		} else {
			interview.StoragePath = key
			if err := s.db.Model(&interview).Update("storage_path", key).Error; err != nil {
				return nil, err
			}
		}
	}

	if err := s.usage.RecordInterview(userID, int64(len(data))); err != nil {
		s.log.Warn("usage tracking failed", zap.String("user_id", userID), zap.Error(err))
	}

	if _, err := s.pipeline.Enqueue(c.Request.Context(), interview.ID); err != nil {
		s.log.Error("enqueue processing failed", zap.String("interview_id", interview.ID), zap.Error(err))
	}
	return &interview, nil
}

func contentTypeFor(fileType string) string {
	switch fileType {
	case pipeline.FileTypeTxt:
		return "text/plain"
	case pipeline.FileTypeMd:
		return "text/markdown"
	case pipeline.FileTypeMp3:
		return "audio/mpeg"
	case pipeline.FileTypeWav:
		return "audio/wav"
	case pipeline.FileTypeMp4:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// Get fetches an interview owned by the user, or nil.
func (s *Service) Get(userID, id string) (*models.InterviewModel, error) {
	var row models.InterviewModel
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes an interview and everything derived from it.
func (s *Service) Delete(c *gin.Context, userID, id string) (bool, error) {
	row, err := s.Get(userID, id)
	if err != nil || row == nil {
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", id).Delete(&models.InsightModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("interview_id = ?", id).Delete(&models.SpeakerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("interview_id = ?", id).Delete(&models.TranscriptChunkModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(row).Error
	})
	if err != nil {
		return false, err
	}

	if s.store != nil && row.StoragePath != "" {
		if err := s.store.Delete(c.Request.Context(), row.StoragePath); err != nil {
			s.log.Warn("delete stored file failed", zap.String("key", row.StoragePath), zap.Error(err))
		}
	}
	return true, nil
}

// Reprocess re-queues analysis for an interview that already has content.
func (s *Service) Reprocess(c *gin.Context, userID, id string) (*models.InterviewModel, error) {
	row, err := s.Get(userID, id)
	if err != nil || row == nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":        models.InterviewQueued,
		"error_message": "",
	}
	if err := s.db.Model(row).Updates(updates).Error; err != nil {
		return nil, err
	}
	row.Status = models.InterviewQueued
	row.ErrorMessage = ""

	if _, err := s.pipeline.Enqueue(c.Request.Context(), row.ID); err != nil {
		return nil, err
	}
	return row, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/interviews", authMW)
	g.POST("", h.upload)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/transcript", h.transcript)
	g.POST("/:id/reprocess", h.reprocess)
	g.DELETE("/:id", h.delete)
}

// POST /interviews [auth]
// Accepts either a multipart file upload or a JSON body with an inline
// transcript.
func (h *Handler) upload(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var user models.UserModel
	if err := h.svc.db.First(&user, "id = ?", userID).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	if err := h.svc.usage.CheckInterviewQuota(&user); err != nil {
		if errors.Is(err, usage.ErrQuotaExceeded) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	var (
		row *models.InterviewModel
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		header, ferr := c.FormFile("file")
		if ferr != nil {
			response.BadRequest(c, "missing file field")
			return
		}
		row, err = h.svc.CreateFromFile(c, userID, header)
	} else {
		var dto TextUploadDTO
		if berr := c.ShouldBindJSON(&dto); berr != nil {
			response.BadRequest(c, berr.Error())
			return
		}
		row, err = h.svc.CreateFromText(c, userID, &dto)
	}

	if err != nil {
		if errors.Is(err, errDuplicateFile) {
			response.Conflict(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, row)
}

// GET /interviews [auth]
func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	db := h.svc.db.Model(&models.InterviewModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var rows []models.InterviewModel
	meta, err := pagination.Paginate(db, pagination.FromContext(c), &rows)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, rows, meta)
}

// GET /interviews/:id [auth]
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

// GET /interviews/:id/transcript [auth]
func (h *Handler) transcript(c *gin.Context) {
	row, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if row == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{
		"interview_id": row.ID,
		"filename":     row.Filename,
		"transcript":   row.Transcript,
	})
}

// POST /interviews/:id/reprocess [auth]
func (h *Handler) reprocess(c *gin.Context) {
	row, err := h.svc.Reprocess(c, middleware.CurrentUserID(c), c.Param("id"))
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

// DELETE /interviews/:id [auth]
func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c, middleware.CurrentUserID(c), c.Param("id"))
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
