// Package httpapi exposes the score aggregator, prompt source, and auth flows
// over HTTP.
package httpapi

import (
	"context"

	"go.uber.org/zap"

	"typetrivia/internal/auth"
	"typetrivia/internal/score"
	"typetrivia/internal/typing"
)

// PromptSource supplies prompt sets for new sessions.
type PromptSource interface {
	Fetch(ctx context.Context) ([]typing.Prompt, error)
}

// API bundles the handler dependencies.
type API struct {
	scores       *score.Service
	prompts      PromptSource
	users        *auth.Service
	tokens       *auth.TokenManager
	rankingLimit int
	logger       *zap.Logger
}

// NewAPI wires the handlers. logger may be nil.
func NewAPI(scores *score.Service, prompts PromptSource, users *auth.Service, tokens *auth.TokenManager, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		scores:       scores,
		prompts:      prompts,
		users:        users,
		tokens:       tokens,
		rankingLimit: score.DefaultRankingLimit,
		logger:       logger,
	}
}

// SetRankingLimit overrides the default leaderboard size used when the
// request carries no limit parameter.
func (a *API) SetRankingLimit(limit int) {
	if limit > 0 {
		a.rankingLimit = limit
	}
}
