package models

// Insight categories.
const (
	CategoryPainPoint      = "pain_point"
	CategoryFeatureRequest = "feature_request"
	CategoryPositive       = "positive"
	CategorySuggestion     = "suggestion"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// InsightModel is one extracted observation tied to a verbatim transcript quote.
type InsightModel struct {
	Base
	UserID          string      `json:"user_id"          gorm:"type:char(36);index:ix_insights_user_theme;not null"`
	InterviewID     string      `json:"interview_id"     gorm:"type:char(36);index;not null"`
	ThemeID         *string     `json:"theme_id"         gorm:"type:char(36);index:ix_insights_user_theme"`
	Category        string      `json:"category"         gorm:"size:20;not null"`
	Title           string      `json:"title"            gorm:"size:1024"`
	Quote           string      `json:"quote"            gorm:"type:text"`
	QuoteStartIndex *int        `json:"quote_start_index"`
	QuoteEndIndex   *int        `json:"quote_end_index"`
	SpeakerID       *string     `json:"speaker_id"       gorm:"type:char(36)"`
	ThemeSuggestion *string     `json:"theme_suggestion" gorm:"size:512"`
	SubThemes       StringSlice `json:"sub_themes"       gorm:"type:json;serializer:json"`
	Sentiment       *string     `json:"sentiment"        gorm:"size:20"`
	Confidence      float64     `json:"confidence"`
	IsFlagged       bool        `json:"is_flagged"`
	IsDismissed     bool        `json:"is_dismissed"`
	IsManual        bool        `json:"is_manual"`
}

func (InsightModel) TableName() string { return "insights" }
