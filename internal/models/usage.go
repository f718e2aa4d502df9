package models

// UsageModel tracks per-user monthly counters. Month is "YYYY-MM".
type UsageModel struct {
	Base
	UserID             string `json:"user_id" gorm:"type:char(36);uniqueIndex:uniq_usage_user_month;not null"`
	Month              string `json:"month"   gorm:"size:7;uniqueIndex:uniq_usage_user_month;not null"`
	InterviewsUploaded int    `json:"interviews_uploaded"`
	QAQueriesUsed      int    `json:"qa_queries_used"`
	StorageBytesUsed   int64  `json:"storage_bytes_used"`
}

func (UsageModel) TableName() string { return "usage" }
