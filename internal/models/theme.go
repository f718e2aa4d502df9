package models

import "time"

// Theme states. A theme is never deleted; it is demoted to "previous" once no
// insights group to it anymore, preserving references in exported reports.
const (
	ThemeActive   = "active"
	ThemePrevious = "previous"
)

// ThemeModel is a named cluster of insights spanning at least two interviews.
// NormalizedName carries the grouping key; the unique index resolves the
// concurrent-synthesis create race (second writer re-fetches and updates).
type ThemeModel struct {
	Base
	UserID            string     `json:"user_id"  gorm:"type:char(36);uniqueIndex:uniq_themes_user_key;index:ix_themes_user_status;not null"`
	Name              string     `json:"name"     gorm:"size:512;not null"`
	NormalizedName    string     `json:"-"        gorm:"size:512;uniqueIndex:uniq_themes_user_key;not null"`
	Description       string     `json:"description" gorm:"type:text"`
	MentionCount      int        `json:"mention_count"`
	SentimentPositive float64    `json:"sentiment_positive"`
	SentimentNeutral  float64    `json:"sentiment_neutral"`
	SentimentNegative float64    `json:"sentiment_negative"`
	IsNew             bool       `json:"is_new"`
	LastActivity      *time.Time `json:"last_activity"`
	Status            string     `json:"status"   gorm:"size:20;index:ix_themes_user_status;default:'active'"`
}

func (ThemeModel) TableName() string { return "themes" }
