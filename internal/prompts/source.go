// Package prompts composes the trivia client and the optional translation
// pipeline into the prompt-set fetch the session controller consumes.
package prompts

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"typetrivia/internal/opentdb"
	"typetrivia/internal/typing"
)

// ErrUpstreamUnavailable wraps trivia-source failures. The caller treats it
// like an empty set: abort to idle and let the user retry.
var ErrUpstreamUnavailable = errors.New("prompt source unavailable")

// TriviaFetcher is the trivia-question source.
type TriviaFetcher interface {
	FetchQuestions(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)
}

// Translator converts prompt text; nil disables the pipeline.
type Translator interface {
	Translate(ctx context.Context, text, langpair string) (string, error)
}

// Source produces ready-to-type prompt sets: fetched, entity-decoded, and
// optionally translated.
type Source struct {
	trivia     TriviaFetcher
	translator Translator
	amount     int
	langpair   string
	logger     *zap.Logger
}

// NewSource builds a prompt source. translator may be nil; logger may be nil.
func NewSource(trivia TriviaFetcher, translator Translator, amount int, langpair string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		trivia:     trivia,
		translator: translator,
		amount:     amount,
		langpair:   langpair,
		logger:     logger,
	}
}

// Fetch returns one prompt set. Translation failures fall back to the
// untranslated text per prompt; only the trivia fetch itself is fatal.
func (s *Source) Fetch(ctx context.Context) ([]typing.Prompt, error) {
	raw, err := s.trivia.FetchQuestions(ctx, s.amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	prompts := typing.BuildPrompts(raw)
	if s.translator == nil {
		return prompts, nil
	}

	for i := range prompts {
		prompts[i].Text = s.translateOrKeep(ctx, prompts[i].Text)
		prompts[i].Answer = s.translateOrKeep(ctx, prompts[i].Answer)
	}
	return prompts, nil
}

func (s *Source) translateOrKeep(ctx context.Context, text string) string {
	translated, err := s.translator.Translate(ctx, text, s.langpair)
	if err != nil {
		s.logger.Warn("translation failed, keeping original text", zap.Error(err))
		return text
	}
	return translated
}
