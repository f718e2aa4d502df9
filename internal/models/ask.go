package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Message roles within an ask conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Citation links an answer back to its supporting transcript excerpt.
type Citation struct {
	InterviewID string `json:"interview_id"`
	Filename    string `json:"filename"`
	Quote       string `json:"quote"`
	ChunkID     string `json:"chunk_id,omitempty"`
}

// CitationList stores structured citations as a JSON column.
type CitationList []Citation

func (l CitationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Citation(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CitationList) Scan(value interface{}) error {
	if l == nil {
		return fmt.Errorf("models.CitationList: Scan on nil pointer")
	}
	if value == nil {
		*l = CitationList{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.CitationList: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*l = CitationList{}
		return nil
	}

	var list []Citation
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return fmt.Errorf("models.CitationList: %w", err)
	}
	*l = list
	return nil
}

// AskConversationModel groups ordered Q&A turns for one user.
type AskConversationModel struct {
	Base
	UserID string `json:"user_id" gorm:"type:char(36);index;not null"`
	Title  string `json:"title"   gorm:"size:512;default:'New Conversation'"`
}

func (AskConversationModel) TableName() string { return "ask_conversations" }

// AskMessageModel is one turn in a conversation, ordered by creation time.
type AskMessageModel struct {
	Base
	ConversationID string       `json:"conversation_id" gorm:"type:char(36);index;not null"`
	Role           string       `json:"role"            gorm:"size:20;not null"`
	Content        string       `json:"content"         gorm:"type:longtext"`
	Citations      CitationList `json:"citations"       gorm:"type:json"`
}

func (AskMessageModel) TableName() string { return "ask_messages" }
