package synthesis

import (
	"context"
	"errors"
	"time"

	"github.com/deepjyoti31/spec10x/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// minThemeSources is how many distinct interviews a cluster needs before it
// becomes a theme. Single-source clusters stay unlinked signals.
const minThemeSources = 2

// Service runs cross-interview theme synthesis.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// Synthesize reclusters all of a user's non-dismissed insights into themes
// and returns the number of themes touched. Themes that no cluster maps to
// anymore are demoted to "previous".
func (s *Service) Synthesize(ctx context.Context, userID string) (int, error) {
	db := s.db.WithContext(ctx)

	var insights []models.InsightModel
	if err := db.
		Where("user_id = ? AND is_dismissed = ? AND theme_suggestion IS NOT NULL", userID, false).
		Find(&insights).Error; err != nil {
		return 0, err
	}
	if len(insights) == 0 {
		s.log.Info("no insights to synthesize", zap.String("user_id", userID))
		return 0, nil
	}

	facts := make([]InsightFact, 0, len(insights))
	for _, ins := range insights {
		fact := InsightFact{
			ID:          ins.ID,
			InterviewID: ins.InterviewID,
			Category:    ins.Category,
		}
		if ins.ThemeSuggestion != nil {
			fact.ThemeSuggestion = *ins.ThemeSuggestion
		}
		if ins.Sentiment != nil {
			fact.Sentiment = *ins.Sentiment
		}
		facts = append(facts, fact)
	}

	groups := Plan(facts)

	var existing []models.ThemeModel
	if err := db.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return 0, err
	}
	byKey := make(map[string]*models.ThemeModel, len(existing))
	for i := range existing {
		byKey[existing[i].NormalizedName] = &existing[i]
	}

	now := time.Now().UTC()
	touched := 0
	grouped := make(map[string]bool, len(groups))

	for _, group := range groups {
		grouped[group.Key] = true

		theme, ok := byKey[group.Key]
		if ok {
			theme.MentionCount = group.MentionCount
			theme.SentimentPositive = group.SentimentPositive
			theme.SentimentNegative = group.SentimentNegative
			theme.SentimentNeutral = group.SentimentNeutral
			theme.LastActivity = &now
			if group.UniqueInterviews >= minThemeSources {
				theme.Status = models.ThemeActive
			}
			if err := db.Save(theme).Error; err != nil {
				return 0, err
			}
		} else {
			if group.UniqueInterviews < minThemeSources {
				// Single-source signal, not yet a theme.
				continue
			}
			created, err := s.createTheme(db, userID, group, now)
			if err != nil {
				return 0, err
			}
			theme = created
			byKey[group.Key] = theme
		}

		if err := db.Model(&models.InsightModel{}).
			Where("id IN ?", group.InsightIDs).
			Update("theme_id", theme.ID).Error; err != nil {
			return 0, err
		}
		touched++
	}

	for key, theme := range byKey {
		if grouped[key] {
			continue
		}
		if theme.Status != models.ThemePrevious {
			theme.Status = models.ThemePrevious
			if err := db.Save(theme).Error; err != nil {
				return 0, err
			}
		}
	}

	s.log.Info("synthesis complete",
		zap.String("user_id", userID),
		zap.Int("themes", touched),
	)
	return touched, nil
}

// createTheme inserts a new theme. When a concurrent synthesis run wins the
// unique (user_id, normalized_name) race, the insert fails and the existing
// row is fetched and updated instead.
func (s *Service) createTheme(db *gorm.DB, userID string, group Group, now time.Time) (*models.ThemeModel, error) {
	theme := models.ThemeModel{
		UserID:            userID,
		Name:              group.Name,
		NormalizedName:    group.Key,
		Description:       group.Description,
		MentionCount:      group.MentionCount,
		SentimentPositive: group.SentimentPositive,
		SentimentNegative: group.SentimentNegative,
		SentimentNeutral:  group.SentimentNeutral,
		IsNew:             true,
		LastActivity:      &now,
		Status:            models.ThemeActive,
	}
	err := db.Create(&theme).Error
	if err == nil {
		return &theme, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	var winner models.ThemeModel
	if ferr := db.Where("user_id = ? AND normalized_name = ?", userID, group.Key).
		First(&winner).Error; ferr != nil {
		return nil, err
	}
	winner.MentionCount = group.MentionCount
	winner.SentimentPositive = group.SentimentPositive
	winner.SentimentNegative = group.SentimentNegative
	winner.SentimentNeutral = group.SentimentNeutral
	winner.LastActivity = &now
	winner.Status = models.ThemeActive
	if uerr := db.Save(&winner).Error; uerr != nil {
		return nil, uerr
	}
	return &winner, nil
}
