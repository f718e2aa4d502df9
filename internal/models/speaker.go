package models

// SpeakerModel is a participant detected in one interview transcript.
type SpeakerModel struct {
	Base
	InterviewID   string  `json:"interview_id" gorm:"type:char(36);index;not null"`
	Label         string  `json:"label"        gorm:"size:255;not null"`
	Name          *string `json:"name"         gorm:"size:255"`
	Role          *string `json:"role"         gorm:"size:255"`
	IsInterviewer bool    `json:"is_interviewer"`
	AutoDetected  bool    `json:"auto_detected"`
}

func (SpeakerModel) TableName() string { return "speakers" }
