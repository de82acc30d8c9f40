package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/rayn18370-max/Study-Buddy/internal/config"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/generation"
	"github.com/samber/lo"
	"google.golang.org/genai"
)

// defaultPromptTemplate asks the model for the full study set as strict
// JSON matching responseSchema.
const defaultPromptTemplate = `You are a study assistant. Create study material about the topic below.

Topic: {{.Topic}}

Respond with JSON only, using exactly this shape:
{
  "notes": [{"heading": "...", "points": ["Term: definition", "..."]}],
  "flashcards": [{"front": "...", "back": "..."}],
  "mcq": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "..."}],
  "short": [{"question": "...", "answer": "..."}]
}

Produce 4-6 notes with 3-5 bullet points each (prefer "Term: definition"
bullets), 8-10 flashcards, 5 multiple-choice questions whose
correct_answer exactly matches one option, and 3 short-answer questions.`

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger         *slog.Logger
	cfg            config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
}

// Compile-time interface check.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator. The API key and model
// name are required; an empty prompt template falls back to the built-in
// one.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("study_set").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		cfg:            cfg,
		promptTemplate: promptTemplate,
		client:         client,
	}, nil
}

// GenerateStudySet implements generation.Generator.
func (g *Generator) GenerateStudySet(ctx context.Context, topic string) (*generation.StudySet, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", generation.ErrGenerationFailed)
	}

	prompt, err := g.createPrompt(topic)
	if err != nil {
		return nil, err
	}

	raw, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseStudySet(raw)
}

func (g *Generator) createPrompt(topic string) (string, error) {
	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, promptData{Topic: topic}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff. Permanent
// failures (blocked content, malformed responses) are not retried.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	retries := g.cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			g.logger.DebugContext(ctx, "retrying generation",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff))

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
			case <-time.After(backoff):
			}
		}

		resp, err := g.client.Models.GenerateContent(
			ctx,
			g.cfg.ModelName,
			genai.Text(prompt),
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
			continue
		}

		if len(resp.Candidates) == 0 {
			return "", fmt.Errorf("%w: response contained no candidates", generation.ErrContentBlocked)
		}

		text := resp.Text()
		if text == "" {
			lastErr = fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: all %d attempts failed: %v", generation.ErrGenerationFailed, retries, lastErr)
}

// parseStudySet converts the model's JSON into a generation.StudySet.
func parseStudySet(raw string) (*generation.StudySet, error) {
	var schema responseSchema
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	set := &generation.StudySet{}
	for _, n := range schema.Notes {
		if n.Heading == "" || len(n.Points) == 0 {
			continue
		}
		set.Notes = append(set.Notes, domain.Note{Heading: n.Heading, Points: n.Points})
	}
	for _, c := range schema.Flashcards {
		if c.Front == "" || c.Back == "" {
			continue
		}
		set.Flashcards = append(set.Flashcards, domain.Flashcard{Front: c.Front, Back: c.Back})
	}
	for _, q := range schema.MCQ {
		if q.Question == "" || len(q.Options) < 2 || !lo.Contains(q.Options, q.CorrectAnswer) {
			continue
		}
		set.Exam.MCQ = append(set.Exam.MCQ, domain.MCQQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	for _, q := range schema.Short {
		if q.Question == "" || q.Answer == "" {
			continue
		}
		set.Exam.Short = append(set.Exam.Short, domain.ShortAnswerQuestion{
			Question: q.Question,
			Answer:   q.Answer,
		})
	}

	if len(set.Notes) == 0 && len(set.Flashcards) == 0 &&
		len(set.Exam.MCQ) == 0 && len(set.Exam.Short) == 0 {
		return nil, fmt.Errorf("%w: response contained no usable material", generation.ErrInvalidResponse)
	}

	return set, nil
}

// stripCodeFences removes a wrapping ```json ... ``` block, which some
// model versions add despite the JSON MIME type.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
