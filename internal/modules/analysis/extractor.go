package analysis

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	appcfg "github.com/deepjyoti31/spec10x/internal/config"
	"github.com/deepjyoti31/spec10x/internal/models"
	"github.com/deepjyoti31/spec10x/internal/modules/ai"
	"go.uber.org/zap"
)

// Insight is one extracted finding, not yet persisted.
type Insight struct {
	Category        string
	Title           string
	Quote           string
	QuoteStart      *int
	QuoteEnd        *int
	Speaker         string
	ThemeSuggestion string
	SubThemes       []string
	Sentiment       string
	Confidence      float64
}

// Result is the full outcome of analyzing one transcript.
type Result struct {
	Insights []Insight
	Speakers []Speaker
	Summary  string
	Language string
}

const maxTranscriptChars = 50000

// Extractor turns transcripts into structured insights. With no usable AI
// client it runs the deterministic keyword path; real extraction falls back
// to the keyword path on any provider error.
type Extractor struct {
	client     *ai.Client
	assignment *appcfg.ModelAssignment
	log        *zap.Logger

	// rng is drawn from by concurrent pipeline runs; mu guards it.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewExtractor(client *ai.Client, assignment *appcfg.ModelAssignment, rng *rand.Rand, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{client: client, assignment: assignment, rng: rng, log: log}
}

// Analyze extracts insights, speakers, a summary and the language from a
// transcript.
func (e *Extractor) Analyze(ctx context.Context, transcript string) *Result {
	if e.client == nil || !e.client.Enabled() {
		return e.mockAnalyze(transcript)
	}
	result, err := e.realAnalyze(ctx, transcript)
	if err != nil {
		e.log.Warn("AI extraction failed, falling back to keyword analysis", zap.Error(err))
		return e.mockAnalyze(transcript)
	}
	return result
}

func (e *Extractor) mockAnalyze(transcript string) *Result {
	result := &Result{Language: "en"}
	result.Speakers = DetectSpeakers(transcript)

	for _, segment := range SplitSegments(transcript) {
		text := strings.TrimSpace(segment.Text)
		textLower := strings.ToLower(text)

		for _, rule := range painPatterns {
			if rule.re.MatchString(textLower) {
				result.Insights = append(result.Insights, Insight{
					Category:        models.CategoryPainPoint,
					Title:           generateTitle(text),
					Quote:           text,
					QuoteStart:      segment.Start,
					QuoteEnd:        segment.End,
					Speaker:         segment.Speaker,
					ThemeSuggestion: GuessTheme(textLower),
					Sentiment:       models.SentimentNegative,
					Confidence:      e.confidence(0.75, 0.95),
				})
				break
			}
		}

		for _, rule := range featurePatterns {
			if rule.re.MatchString(textLower) {
				if hasQuote(result.Insights, text) {
					break
				}
				result.Insights = append(result.Insights, Insight{
					Category:        models.CategoryFeatureRequest,
					Title:           generateTitle(text),
					Quote:           text,
					QuoteStart:      segment.Start,
					QuoteEnd:        segment.End,
					Speaker:         segment.Speaker,
					ThemeSuggestion: GuessTheme(textLower),
					Sentiment:       models.SentimentNeutral,
					Confidence:      e.confidence(0.70, 0.90),
				})
				break
			}
		}

		for _, rule := range positivePatterns {
			if rule.re.MatchString(textLower) {
				if hasQuote(result.Insights, text) {
					break
				}
				result.Insights = append(result.Insights, Insight{
					Category:        models.CategoryPositive,
					Title:           generateTitle(text),
					Quote:           text,
					QuoteStart:      segment.Start,
					QuoteEnd:        segment.End,
					Speaker:         segment.Speaker,
					ThemeSuggestion: GuessTheme(textLower),
					Sentiment:       models.SentimentPositive,
					Confidence:      e.confidence(0.80, 0.95),
				})
				break
			}
		}
	}

	painCount, featureCount, positiveCount := 0, 0, 0
	for _, ins := range result.Insights {
		switch ins.Category {
		case models.CategoryPainPoint:
			painCount++
		case models.CategoryFeatureRequest:
			featureCount++
		case models.CategoryPositive:
			positiveCount++
		}
	}
	result.Summary = fmt.Sprintf(
		"Interview analysis found %d insights: %d pain points, %d feature requests, %d positive feedback items.",
		len(result.Insights), painCount, featureCount, positiveCount,
	)
	return result
}

func hasQuote(insights []Insight, quote string) bool {
	for _, ins := range insights {
		if ins.Quote == quote {
			return true
		}
	}
	return false
}

// confidence draws from [min, max) rounded to two decimals. A nil rng yields
// the midpoint, which keeps tests deterministic.
func (e *Extractor) confidence(min, max float64) float64 {
	if e.rng == nil {
		return math.Round((min+max)/2*100) / 100
	}
	e.mu.Lock()
	v := min + e.rng.Float64()*(max-min)
	e.mu.Unlock()
	return math.Round(v*100) / 100
}

var titleSpeakerPrefixRe = regexp.MustCompile(`(?i)^(?:Speaker\s*\d+|Interviewer):\s*`)

// generateTitle produces a concise title from quote text: the first 80
// characters, cut back to the last word boundary past 40, with an ellipsis
// when truncated.
func generateTitle(text string) string {
	runes := []rune(text)
	var title string
	if len(runes) > 80 {
		cut := []rune(strings.TrimSpace(string(runes[:80])))
		// Word-boundary positions count characters, not bytes.
		lastSpace := -1
		for i, r := range cut {
			if r == ' ' {
				lastSpace = i
			}
		}
		if lastSpace > 40 {
			cut = cut[:lastSpace]
		}
		title = string(cut) + "..."
	} else {
		title = strings.TrimSpace(text)
	}
	return titleSpeakerPrefixRe.ReplaceAllString(title, "")
}

type extractionPayload struct {
	Speakers []struct {
		Label         string  `json:"label"`
		Name          *string `json:"name"`
		Role          *string `json:"role"`
		IsInterviewer bool    `json:"is_interviewer"`
	} `json:"speakers"`
	Insights []struct {
		Category        string   `json:"category"`
		Title           string   `json:"title"`
		Quote           string   `json:"quote"`
		Speaker         string   `json:"speaker"`
		ThemeSuggestion string   `json:"theme_suggestion"`
		SubThemes       []string `json:"sub_themes"`
		Sentiment       string   `json:"sentiment"`
		Confidence      float64  `json:"confidence"`
	} `json:"insights"`
	Summary  string `json:"summary"`
	Language string `json:"language"`
}

func (e *Extractor) realAnalyze(ctx context.Context, transcript string) (*Result, error) {
	truncated := transcript
	if runes := []rune(truncated); len(runes) > maxTranscriptChars {
		truncated = string(runes[:maxTranscriptChars])
	}

	raw, err := e.client.GenerateText(ctx, e.assignment, extractionSystemPrompt,
		fmt.Sprintf(extractionUserPrompt, truncated), 4096)
	if err != nil {
		return nil, err
	}

	var payload extractionPayload
	if err := ai.UnmarshalModelJSON(raw, &payload); err != nil {
		return nil, err
	}

	result := &Result{Summary: payload.Summary, Language: payload.Language}
	if result.Language == "" {
		result.Language = "en"
	}

	for _, s := range payload.Speakers {
		label := s.Label
		if label == "" {
			label = "Unknown"
		}
		result.Speakers = append(result.Speakers, Speaker{
			Label:         label,
			Name:          s.Name,
			Role:          s.Role,
			IsInterviewer: s.IsInterviewer,
		})
	}

	for _, i := range payload.Insights {
		category := i.Category
		if category == "" {
			category = models.CategorySuggestion
		}
		theme := i.ThemeSuggestion
		if theme == "" {
			theme = DefaultTheme
		}
		sentiment := i.Sentiment
		if sentiment == "" {
			sentiment = models.SentimentNeutral
		}
		confidence := i.Confidence
		if confidence <= 0 {
			confidence = 0.85
		}

		ins := Insight{
			Category:        category,
			Title:           i.Title,
			Quote:           i.Quote,
			Speaker:         i.Speaker,
			ThemeSuggestion: theme,
			SubThemes:       i.SubThemes,
			Sentiment:       sentiment,
			Confidence:      confidence,
		}
		if i.Quote != "" {
			if pos := strings.Index(transcript, i.Quote); pos >= 0 {
				end := pos + len(i.Quote)
				ins.QuoteStart = &pos
				ins.QuoteEnd = &end
			}
		}
		result.Insights = append(result.Insights, ins)
	}
	return result, nil
}
