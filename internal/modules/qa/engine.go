package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appcfg "github.com/deepjyoti31/spec10x/internal/config"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/modules/ai"
	"github.com/deepjyoti31/spec10x/internal/modules/embedding"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	searchLimit      = 10
	maxCitations     = 5
	maxAnswerTokens  = 1500
	citationExcerpt  = 200
	quoteExcerptSize = 150
)

// Response is the full outcome of one ask turn.
type Response struct {
	Answer             string            `json:"answer"`
	Citations          []models.Citation `json:"citations"`
	SuggestedFollowups []string          `json:"suggested_followups"`
	ConversationID     string            `json:"conversation_id"`
	MessageID          string            `json:"message_id"`
}

// Service answers questions over a user's interview corpus. Retrieval runs
// against stored chunk embeddings; without a usable AI client it degrades to
// keyword search with a templated answer.
type Service struct {
	db         *gorm.DB
	client     *ai.Client
	embedder   *embedding.Embedder
	assignment *appcfg.ModelAssignment
	log        *zap.Logger
}

func NewService(db *gorm.DB, client *ai.Client, embedder *embedding.Embedder, assignment *appcfg.ModelAssignment, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, client: client, embedder: embedder, assignment: assignment, log: log}
}

// Ask answers a question, persisting both conversation turns. An empty
// conversationID (or one the user does not own) starts a new conversation.
func (s *Service) Ask(ctx context.Context, userID, question, conversationID string) (*Response, error) {
	db := s.db.WithContext(ctx)

	var conversation models.AskConversationModel
	found := false
	if conversationID != "" {
		err := db.Where("id = ? AND user_id = ?", conversationID, userID).
			First(&conversation).Error
		if err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if !found {
		conversation = models.AskConversationModel{
			UserID: userID,
			Title:  conversationTitle(question),
		}
		if err := db.Create(&conversation).Error; err != nil {
			return nil, err
		}
	}

	userMsg := models.AskMessageModel{
		ConversationID: conversation.ID,
		Role:           models.RoleUser,
		Content:        question,
	}
	if err := db.Create(&userMsg).Error; err != nil {
		return nil, err
	}

	var resp *Response
	var err error
	if s.client != nil && s.client.Enabled() {
		resp, err = s.realAnswer(ctx, userID, question)
	} else {
		resp, err = s.mockAnswer(ctx, userID, question)
	}
	if err != nil {
		return nil, err
	}

	assistantMsg := models.AskMessageModel{
		ConversationID: conversation.ID,
		Role:           models.RoleAssistant,
		Content:        resp.Answer,
		Citations:      models.CitationList(resp.Citations),
	}
	if err := db.Create(&assistantMsg).Error; err != nil {
		return nil, err
	}

	resp.ConversationID = conversation.ID
	resp.MessageID = assistantMsg.ID
	return resp, nil
}

func conversationTitle(question string) string {
	runes := []rune(question)
	if len(runes) > 100 {
		return string(runes[:100]) + "..."
	}
	return question
}

// mockAnswer runs keyword LIKE retrieval over chunks and insights, then
// composes a templated markdown answer.
func (s *Service) mockAnswer(ctx context.Context, userID, question string) (*Response, error) {
	db := s.db.WithContext(ctx)

	keywords := ExtractKeywords(question)
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}

	var chunkConds []string
	var chunkArgs []interface{}
	for _, kw := range keywords {
		chunkConds = append(chunkConds, "transcript_chunks.content LIKE ?")
		chunkArgs = append(chunkArgs, "%"+kw+"%")
	}

	var chunks []models.TranscriptChunkModel
	chunkQuery := db.Model(&models.TranscriptChunkModel{}).
		Joins("JOIN interviews ON interviews.id = transcript_chunks.interview_id").
		Where("interviews.user_id = ?", userID)
	if len(chunkConds) > 0 {
		chunkQuery = chunkQuery.Where(strings.Join(chunkConds, " OR "), chunkArgs...)
	}
	if err := chunkQuery.Limit(searchLimit).Find(&chunks).Error; err != nil {
		return nil, err
	}

	var insightConds []string
	var insightArgs []interface{}
	for _, kw := range keywords {
		insightConds = append(insightConds, "(title LIKE ? OR quote LIKE ?)")
		insightArgs = append(insightArgs, "%"+kw+"%", "%"+kw+"%")
	}

	var insights []models.InsightModel
	insightQuery := db.Where("user_id = ? AND is_dismissed = ?", userID, false)
	if len(insightConds) > 0 {
		insightQuery = insightQuery.Where(strings.Join(insightConds, " OR "), insightArgs...)
	}
	if err := insightQuery.Limit(searchLimit).Find(&insights).Error; err != nil {
		return nil, err
	}

	interviewNames, err := s.interviewNames(ctx, chunkInterviewIDs(chunks), insightInterviewIDs(insights))
	if err != nil {
		return nil, err
	}

	citations := citationsFromChunks(chunks, interviewNames)

	findings := make([]Finding, 0, len(insights))
	for _, ins := range insights {
		name, ok := interviewNames[ins.InterviewID]
		if !ok {
			name = "Interview"
		}
		findings = append(findings, Finding{
			Category:  ins.Category,
			Title:     ins.Title,
			Quote:     ins.Quote,
			Interview: name,
		})
	}

	answer := ComposeAnswer(question, findings, len(chunks), len(citations))

	return &Response{
		Answer:             answer,
		Citations:          citations,
		SuggestedFollowups: SuggestFollowups(question),
	}, nil
}

// realAnswer embeds the question, ranks the user's chunks by cosine
// similarity and asks the model for a grounded answer. Any failure falls
// back to the keyword path.
func (s *Service) realAnswer(ctx context.Context, userID, question string) (*Response, error) {
	db := s.db.WithContext(ctx)

	queryVec, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		s.log.Warn("query embedding failed, falling back to keyword answer", zap.Error(err))
		return s.mockAnswer(ctx, userID, question)
	}

	var allChunks []models.TranscriptChunkModel
	if err := db.Model(&models.TranscriptChunkModel{}).
		Joins("JOIN interviews ON interviews.id = transcript_chunks.interview_id").
		Where("interviews.user_id = ?", userID).
		Find(&allChunks).Error; err != nil {
		return nil, err
	}

	ranked := rankChunks(allChunks, queryVec, searchLimit)
	if len(ranked) == 0 {
		s.log.Info("no embedded chunks for vector search, using keyword answer",
			zap.String("user_id", userID))
		return s.mockAnswer(ctx, userID, question)
	}

	topChunks := make([]models.TranscriptChunkModel, len(ranked))
	var contextParts []string
	for i, rc := range ranked {
		topChunks[i] = rc.chunk
		contextParts = append(contextParts,
			fmt.Sprintf("[Source: Interview %s]\n%s\n", rc.chunk.InterviewID, rc.chunk.Content))
	}
	contextBlock := strings.Join(contextParts, "\n---\n")

	systemPrompt := "You are a product research analyst. Answer the user's question " +
		"based ONLY on the interview transcript excerpts provided below. " +
		"Cite specific quotes from the excerpts to support your answer. " +
		"If the excerpts don't contain relevant information, say so honestly. " +
		"Format your response in clear markdown."

	prompt := fmt.Sprintf(
		"## User Question\n%s\n\n## Interview Excerpts\n%s\n\nAnswer the question based on these excerpts. Use bullet points and bold key findings.",
		question, contextBlock,
	)

	answer, err := s.client.GenerateText(ctx, s.assignment, systemPrompt, prompt, maxAnswerTokens)
	if err != nil {
		s.log.Warn("AI answer failed, falling back to keyword answer", zap.Error(err))
		return s.mockAnswer(ctx, userID, question)
	}

	interviewNames, err := s.interviewNames(ctx, chunkInterviewIDs(topChunks), nil)
	if err != nil {
		return nil, err
	}
	citations := citationsFromChunks(topChunks, interviewNames)

	return &Response{
		Answer:             answer,
		Citations:          citations,
		SuggestedFollowups: s.aiSuggestFollowups(ctx, question, answer),
	}, nil
}

func chunkInterviewIDs(chunks []models.TranscriptChunkModel) []string {
	ids := make([]string, 0, len(chunks))
	for _, c := range chunks {
		ids = append(ids, c.InterviewID)
	}
	return ids
}

func insightInterviewIDs(insights []models.InsightModel) []string {
	ids := make([]string, 0, len(insights))
	for _, ins := range insights {
		ids = append(ids, ins.InterviewID)
	}
	return ids
}

func (s *Service) interviewNames(ctx context.Context, idGroups ...[]string) (map[string]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, group := range idGroups {
		for _, id := range group {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	var interviews []models.InterviewModel
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&interviews).Error; err != nil {
		return nil, err
	}

	names := make(map[string]string, len(interviews))
	for _, iv := range interviews {
		names[iv.ID] = iv.Filename
	}
	return names, nil
}

// citationsFromChunks builds citations from the first five chunks, one per
// distinct interview, with a 200-character excerpt.
func citationsFromChunks(chunks []models.TranscriptChunkModel, interviewNames map[string]string) []models.Citation {
	var citations []models.Citation
	seen := make(map[string]bool)

	limit := maxCitations
	if len(chunks) < limit {
		limit = len(chunks)
	}
	for _, chunk := range chunks[:limit] {
		if seen[chunk.InterviewID] {
			continue
		}
		seen[chunk.InterviewID] = true

		name, ok := interviewNames[chunk.InterviewID]
		if !ok {
			name = "Unknown"
		}
		citations = append(citations, models.Citation{
			InterviewID: chunk.InterviewID,
			Filename:    name,
			Quote:       truncateRunes(chunk.Content, citationExcerpt) + "...",
			ChunkID:     chunk.ID,
		})
	}
	return citations
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
