package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/modules/analysis"
	"github.com/deepjyoti31/spec10x/internal/modules/embedding"
	"github.com/deepjyoti31/spec10x/internal/modules/gateway"
	"github.com/deepjyoti31/spec10x/internal/modules/synthesis"
	"github.com/deepjyoti31/spec10x/internal/pkg/storage"
	"github.com/deepjyoti31/spec10x/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskTypeProcess is the queue task type for interview processing.
const TaskTypeProcess = "interview:process"

// flagConfidenceBelow marks low-confidence insights for review.
const flagConfidenceBelow = 0.7

// Payload is the task payload for interview processing.
type Payload struct {
	InterviewID string `json:"interview_id"`
}

// Result summarizes one pipeline run.
type Result struct {
	InterviewID string `json:"interview_id"`
	Insights    int    `json:"insights"`
	Themes      int    `json:"themes"`
	Chunks      int    `json:"chunks"`
	Status      string `json:"status"`
}

// Service orchestrates the processing pipeline: extract text, analyze,
// chunk and embed, synthesize themes, mark done. One live task per interview
// is guaranteed by the queue's dedup key.
type Service struct {
	db       *gorm.DB
	tasks    *taskqueue.Service
	hub      *gateway.Hub
	store    *storage.Uploader
	analyzer *analysis.Extractor
	embedSvc *embedding.Service
	synthSvc *synthesis.Service
	log      *zap.Logger
}

func NewService(
	db *gorm.DB,
	tasks *taskqueue.Service,
	hub *gateway.Hub,
	store *storage.Uploader,
	analyzer *analysis.Extractor,
	embedSvc *embedding.Service,
	synthSvc *synthesis.Service,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		db:       db,
		tasks:    tasks,
		hub:      hub,
		store:    store,
		analyzer: analyzer,
		embedSvc: embedSvc,
		synthSvc: synthSvc,
		log:      log,
	}
}

// Enqueue queues processing for an interview. If a task for this interview
// is already live the existing task comes back instead of a new one.
func (s *Service) Enqueue(ctx context.Context, interviewID string) (*taskqueue.Task, error) {
	task, err := s.tasks.Enqueue(ctx, TaskTypeProcess, Payload{InterviewID: interviewID}, interviewID, interviewID)
	if err != nil {
		return nil, err
	}

	if task.Status == taskqueue.TaskPending {
		go s.execute(context.Background(), task.ID, interviewID)
	}
	return task, nil
}

func (s *Service) execute(ctx context.Context, taskID, interviewID string) {
	_ = s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	result, err := s.Process(ctx, interviewID)
	if err != nil {
		_ = s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	_ = s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, result, "")
}

// Process runs the full pipeline for one interview synchronously.
func (s *Service) Process(ctx context.Context, interviewID string) (*Result, error) {
	db := s.db.WithContext(ctx)

	var interview models.InterviewModel
	if err := db.First(&interview, "id = ?", interviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview not found")
		}
		return nil, err
	}
	userID := interview.UserID

	result, err := s.run(ctx, &interview)
	if err != nil {
		s.markFailed(ctx, interviewID, userID, err)
		return nil, err
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, interview *models.InterviewModel) (*Result, error) {
	db := s.db.WithContext(ctx)
	userID := interview.UserID

	if err := s.updateStatus(ctx, interview, models.InterviewTranscribing, "Downloading file...", 0); err != nil {
		return nil, err
	}

	transcript := interview.Transcript
	if transcript == "" {
		data, err := s.fetchFile(ctx, interview)
		if err != nil {
			return nil, err
		}

		s.publish(userID, interview.ID, models.InterviewTranscribing,
			fmt.Sprintf("Extracting text from %s...", interview.Filename), 0)

		transcript, err = ExtractText(data, interview.FileType)
		if err != nil {
			return nil, err
		}

		interview.Transcript = transcript
		if err := db.Model(interview).Update("transcript", transcript).Error; err != nil {
			return nil, err
		}
	}

	if err := s.updateStatus(ctx, interview, models.InterviewAnalyzing, "Analyzing content...", 0); err != nil {
		return nil, err
	}

	analysisResult := s.analyzer.Analyze(ctx, transcript)
	insightCount, err := s.saveAnalysis(ctx, interview, analysisResult)
	if err != nil {
		return nil, err
	}

	s.publish(userID, interview.ID, models.InterviewAnalyzing,
		fmt.Sprintf("Found %d insights", insightCount), insightCount)

	chunkCount, err := s.embedSvc.ChunkAndStore(ctx, interview.ID, transcript)
	if err != nil {
		return nil, err
	}

	themeCount, err := s.synthSvc.Synthesize(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.PublishThemesUpdated(userID, themeCount)
	}

	if err := s.updateStatus(ctx, interview, models.InterviewDone,
		fmt.Sprintf("Complete: %d insights, %d themes", insightCount, themeCount), insightCount); err != nil {
		return nil, err
	}

	s.log.Info("pipeline complete",
		zap.String("interview_id", interview.ID),
		zap.Int("insights", insightCount),
		zap.Int("chunks", chunkCount),
		zap.Int("themes", themeCount),
	)

	return &Result{
		InterviewID: interview.ID,
		Insights:    insightCount,
		Themes:      themeCount,
		Chunks:      chunkCount,
		Status:      models.InterviewDone,
	}, nil
}

// fetchFile loads the raw upload from object storage. Interviews created
// with inline transcripts never reach this point.
func (s *Service) fetchFile(ctx context.Context, interview *models.InterviewModel) ([]byte, error) {
	if s.store == nil || interview.StoragePath == "" {
		return nil, fmt.Errorf("no stored file for interview %s", interview.ID)
	}
	return s.store.Download(ctx, interview.StoragePath)
}

// saveAnalysis persists speakers and insights, replacing any previous run.
func (s *Service) saveAnalysis(ctx context.Context, interview *models.InterviewModel, res *analysis.Result) (int, error) {
	db := s.db.WithContext(ctx)

	err := db.Transaction(func(tx *gorm.DB) error {
		// A re-run replaces prior auto-extracted rows but keeps manual ones.
		if err := tx.Where("interview_id = ? AND is_manual = ?", interview.ID, false).
			Delete(&models.InsightModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("interview_id = ?", interview.ID).
			Delete(&models.SpeakerModel{}).Error; err != nil {
			return err
		}

		speakerIDs := make(map[string]string, len(res.Speakers))
		for _, sp := range res.Speakers {
			row := models.SpeakerModel{
				InterviewID:   interview.ID,
				Label:         sp.Label,
				Name:          sp.Name,
				Role:          sp.Role,
				IsInterviewer: sp.IsInterviewer,
				AutoDetected:  true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			speakerIDs[sp.Label] = row.ID
		}

		for _, ins := range res.Insights {
			category := ins.Category
			switch category {
			case models.CategoryPainPoint, models.CategoryFeatureRequest,
				models.CategoryPositive, models.CategorySuggestion:
			default:
				category = models.CategorySuggestion
			}

			row := models.InsightModel{
				UserID:          interview.UserID,
				InterviewID:     interview.ID,
				Category:        category,
				Title:           ins.Title,
				Quote:           ins.Quote,
				QuoteStartIndex: ins.QuoteStart,
				QuoteEndIndex:   ins.QuoteEnd,
				SubThemes:       models.StringSlice(ins.SubThemes),
				Confidence:      ins.Confidence,
				IsFlagged:       ins.Confidence < flagConfidenceBelow,
			}
			if ins.ThemeSuggestion != "" {
				suggestion := ins.ThemeSuggestion
				row.ThemeSuggestion = &suggestion
			}
			if ins.Sentiment != "" {
				sentiment := ins.Sentiment
				row.Sentiment = &sentiment
			}
			if id, ok := speakerIDs[ins.Speaker]; ok {
				row.SpeakerID = &id
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return tx.Model(interview).Updates(map[string]interface{}{
			"summary":  res.Summary,
			"language": res.Language,
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return len(res.Insights), nil
}

func (s *Service) updateStatus(ctx context.Context, interview *models.InterviewModel, status, message string, insightCount int) error {
	interview.Status = status
	if err := s.db.WithContext(ctx).Model(interview).Update("status", status).Error; err != nil {
		return err
	}
	s.publish(interview.UserID, interview.ID, status, message, insightCount)
	return nil
}

func (s *Service) publish(userID, interviewID, status, message string, insightCount int) {
	if s.hub == nil {
		return
	}
	s.hub.PublishStatus(userID, interviewID, status, message, insightCount)
}

func (s *Service) markFailed(ctx context.Context, interviewID, userID string, cause error) {
	msg := cause.Error()
	if len(msg) > 2000 {
		msg = msg[:2000]
	}
	if err := s.db.WithContext(ctx).Model(&models.InterviewModel{}).
		Where("id = ?", interviewID).
		Updates(map[string]interface{}{
			"status":        models.InterviewError,
			"error_message": msg,
		}).Error; err != nil {
		s.log.Error("failed to record pipeline error", zap.Error(err))
	}

	short := msg
	if len(short) > 200 {
		short = short[:200]
	}
	s.publish(userID, interviewID, models.InterviewError, "Processing failed: "+short, 0)

	s.log.Error("pipeline failed",
		zap.String("interview_id", interviewID),
		zap.Error(cause),
	)
}
