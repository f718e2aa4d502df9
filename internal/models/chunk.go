package models

// TranscriptChunkModel is a fixed-size overlapping window of transcript text,
// the unit of vector retrieval. Immutable once created.
type TranscriptChunkModel struct {
	Base
	InterviewID string `json:"interview_id" gorm:"type:char(36);index;not null"`
	ChunkIndex  int    `json:"chunk_index"`
	Content     string `json:"content"      gorm:"type:longtext"`
	Embedding   Vector `json:"-"            gorm:"type:json"`
}

func (TranscriptChunkModel) TableName() string { return "transcript_chunks" }
