package models

// Interview processing states.
const (
	InterviewQueued       = "queued"
	InterviewTranscribing = "transcribing"
	InterviewAnalyzing    = "analyzing"
	InterviewDone         = "done"
	InterviewError        = "error"
)

// InterviewModel is one uploaded transcript and its processing state.
type InterviewModel struct {
	Base
	UserID        string `json:"user_id"      gorm:"type:char(36);index:ix_interviews_user_status;not null"`
	Filename      string `json:"filename"     gorm:"size:512"`
	FileType      string `json:"file_type"    gorm:"size:10"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	StoragePath   string `json:"-"            gorm:"size:1024"`
	Status        string `json:"status"       gorm:"size:20;index:ix_interviews_user_status;default:'queued'"`
	Transcript    string `json:"-"            gorm:"type:longtext"`
	Summary       string `json:"summary"      gorm:"type:text"`
	Language      string `json:"language"     gorm:"size:10"`
	ErrorMessage  string `json:"error_message,omitempty" gorm:"type:text"`
	FileHash      string `json:"-"            gorm:"size:64;index"`
}

func (InterviewModel) TableName() string { return "interviews" }
