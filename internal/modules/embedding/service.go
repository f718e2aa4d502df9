package embedding

import (
	"context"

	"github.com/deepjyoti31/spec10x/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service chunks transcripts and stores them with embeddings for retrieval.
type Service struct {
	db       *gorm.DB
	embedder *Embedder
	log      *zap.Logger
}

func NewService(db *gorm.DB, embedder *Embedder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, embedder: embedder, log: log}
}

// ChunkAndStore splits a transcript, embeds each chunk and persists them.
// Existing chunks for the interview are replaced, so re-running the pipeline
// does not duplicate rows. Returns the number of chunks created.
func (s *Service) ChunkAndStore(ctx context.Context, interviewID, transcript string) (int, error) {
	chunks := ChunkTranscript(transcript, DefaultChunkSize, DefaultOverlap)
	if len(chunks) == 0 {
		s.log.Warn("no chunks generated", zap.String("interview_id", interviewID))
		return 0, nil
	}

	vectors := s.embedder.EmbedChunks(ctx, chunks)

	rows := make([]models.TranscriptChunkModel, len(chunks))
	for i, content := range chunks {
		rows[i] = models.TranscriptChunkModel{
			InterviewID: interviewID,
			ChunkIndex:  i,
			Content:     content,
			Embedding:   models.Vector(vectors[i]),
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", interviewID).
			Delete(&models.TranscriptChunkModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("stored transcript chunks",
		zap.String("interview_id", interviewID),
		zap.Int("count", len(chunks)),
	)
	return len(chunks), nil
}
