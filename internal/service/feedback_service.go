package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/nazhanhafiz/psikometrik/config"
	"github.com/nazhanhafiz/psikometrik/internal/scoring"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// FeedbackService produces the AI-written coaching narrative attached to a
// scored attempt.
type FeedbackService interface {
	FeedbackForResult(quizTitle string, result scoring.Result) (string, error)
}

type geminiFeedbackService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiFeedbackService(cfg *config.Config) (FeedbackService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. FeedbackService will be non-functional.")
		return &geminiFeedbackService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiFeedbackService{client: model, cfg: cfg}, nil
}

func (s *geminiFeedbackService) FeedbackForResult(quizTitle string, result scoring.Result) (string, error) {
	if s.client == nil {
		return "AI feedback is unavailable (service not configured).", fmt.Errorf("gemini client not initialized")
	}

	ctx := context.Background()
	prompt := buildFeedbackPrompt(quizTitle, result)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("quiz", quizTitle).Msg("Gemini API error during feedback generation")
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	feedback := strings.TrimSpace(sb.String())
	if feedback == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return feedback, nil
}

func buildFeedbackPrompt(quizTitle string, result scoring.Result) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced psychometric-test coach for Malaysian public-sector candidates.\n")
	sb.WriteString("A candidate just completed a practice quiz. Write short, encouraging feedback in Malay.\n\n")
	sb.WriteString(fmt.Sprintf("Quiz: %s\n", quizTitle))
	sb.WriteString(fmt.Sprintf("Overall: %d of %d points (%d%%, band %s)\n",
		result.TotalScore, result.MaxScore, result.Percentage(), scoring.GradeFor(result.Percentage())))
	sb.WriteString("Breakdown by competency (Teras):\n")

	buckets := make([]string, 0, len(result.TerasScores))
	for bucket := range result.TerasScores {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	for _, bucket := range buckets {
		ts := result.TerasScores[bucket]
		sb.WriteString(fmt.Sprintf("- %s: %d/%d (%d%%, %s)\n", bucket, ts.Score, ts.Max, ts.Percentage, scoring.GradeFor(ts.Percentage)))
	}

	sb.WriteString("\nHighlight the strongest Teras, name the weakest one with two concrete practice suggestions, ")
	sb.WriteString("and close with one sentence of encouragement. Plain text only, at most 150 words.\n")
	return sb.String()
}
