package synthesis

import (
	"fmt"
	"math"
	"strings"

	"github.com/deepjyoti31/spec10x/internal/models"
)

// InsightFact is the slice of an insight the grouping algorithm needs.
type InsightFact struct {
	ID              string
	InterviewID     string
	Category        string
	ThemeSuggestion string
	Sentiment       string
}

// Group is one planned theme cluster.
type Group struct {
	Key               string // normalized grouping key
	Name              string // most common raw suggestion
	Description       string
	InsightIDs        []string
	MentionCount      int
	UniqueInterviews  int
	SentimentPositive float64
	SentimentNegative float64
	SentimentNeutral  float64
}

// NormalizeThemeName lowercases a suggestion and folds separators so
// "Export_Features", "export-features" and "Export Features" group together.
func NormalizeThemeName(name string) string {
	n := strings.TrimSpace(strings.ToLower(name))
	n = strings.ReplaceAll(n, "_", " ")
	n = strings.ReplaceAll(n, "-", " ")
	return n
}

// Plan groups insight facts by normalized theme suggestion and computes the
// per-group stats. Insights without a suggestion are skipped. Groups come
// back in first-seen order; the threshold decision is the caller's.
func Plan(facts []InsightFact) []Group {
	var order []string
	grouped := make(map[string][]InsightFact)

	for _, f := range facts {
		if strings.TrimSpace(f.ThemeSuggestion) == "" {
			continue
		}
		key := NormalizeThemeName(f.ThemeSuggestion)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], f)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		members := grouped[key]

		// Pick the most common raw suggestion as the display name. Ties go
		// to the suggestion seen first.
		var nameOrder []string
		nameCounts := make(map[string]int)
		for _, m := range members {
			if _, ok := nameCounts[m.ThemeSuggestion]; !ok {
				nameOrder = append(nameOrder, m.ThemeSuggestion)
			}
			nameCounts[m.ThemeSuggestion]++
		}
		bestName := nameOrder[0]
		for _, n := range nameOrder[1:] {
			if nameCounts[n] > nameCounts[bestName] {
				bestName = n
			}
		}

		interviews := make(map[string]bool)
		ids := make([]string, 0, len(members))
		var withSentiment, positive, negative int
		for _, m := range members {
			interviews[m.InterviewID] = true
			ids = append(ids, m.ID)
			if m.Sentiment == "" {
				continue
			}
			withSentiment++
			switch m.Sentiment {
			case models.SentimentPositive:
				positive++
			case models.SentimentNegative:
				negative++
			}
		}

		denom := withSentiment
		if denom == 0 {
			denom = 1
		}
		posFrac := float64(positive) / float64(denom)
		negFrac := float64(negative) / float64(denom)

		groups = append(groups, Group{
			Key:               key,
			Name:              bestName,
			Description:       describeGroup(members, len(interviews)),
			InsightIDs:        ids,
			MentionCount:      len(members),
			UniqueInterviews:  len(interviews),
			SentimentPositive: round2(posFrac),
			SentimentNegative: round2(negFrac),
			SentimentNeutral:  round2(1.0 - posFrac - negFrac),
		})
	}
	return groups
}

func describeGroup(members []InsightFact, uniqueInterviews int) string {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.Category]++
	}

	var parts []string
	if n := counts[models.CategoryPainPoint]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d pain points", n))
	}
	if n := counts[models.CategoryFeatureRequest]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d feature requests", n))
	}
	if n := counts[models.CategoryPositive]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d positive mentions", n))
	}
	if n := counts[models.CategorySuggestion]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d suggestions", n))
	}

	return fmt.Sprintf("Theme with %d mentions across %d interviews: %s.",
		len(members), uniqueInterviews, strings.Join(parts, ", "))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
