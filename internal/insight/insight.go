// Package insight turns a stored quiz result into a short explanation
// using the configured LLM provider.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/persona/internal/llm"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/store"
)

// Insight is the model's explanation of one result.
type Insight struct {
	Headline    string   `json:"headline"`
	Description string   `json:"description"`
	Tips        []string `json:"tips"`
}

// Config holds generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation parameters used by the app.
func DefaultConfig() Config {
	return Config{MaxTokens: 600, Temperature: 0.4}
}

// Service explains results. Explanations are cached per result ID for the
// life of the process since a stored result never changes.
type Service struct {
	provider llm.Provider
	set      *quiz.QuestionSet
	config   Config
	logger   *zap.Logger

	mu    sync.Mutex
	cache map[string]*Insight
}

func New(provider llm.Provider, set *quiz.QuestionSet, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		set:      set,
		config:   cfg,
		logger:   logger,
		cache:    make(map[string]*Insight),
	}
}

// Explain returns an explanation for rec.
func (s *Service) Explain(ctx context.Context, rec store.ResultRecord) (*Insight, error) {
	if cached := s.cached(rec.ID); cached != nil {
		return cached, nil
	}

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(s.set, rec)}},
		Schema:      InsightSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(llm.WithCall(ctx, llm.Call{Purpose: "insight", Subject: rec.ID}), req)
	if err != nil {
		return nil, fmt.Errorf("generate insight: %w", err)
	}

	var out Insight
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse insight: %w", err)
	}

	s.logger.Debug("insight generated",
		zap.String("result_id", rec.ID),
		zap.String("result", rec.ResultSummary),
		zap.Int("tips", len(out.Tips)),
	)

	if rec.ID != "" {
		s.mu.Lock()
		s.cache[rec.ID] = &out
		s.mu.Unlock()
	}
	return &out, nil
}

func (s *Service) cached(id string) *Insight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[id]
}
