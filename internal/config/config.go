// Package config loads the optional TOML configuration file for the server.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"typetrivia/internal/score"
	"typetrivia/internal/typing"
)

const (
	defaultAddr         = ":8080"
	defaultDBPath       = "typetrivia.db"
	defaultPromptAmount = 10
	defaultLangPair     = "en|ja"
)

// File represents the TOML configuration file. All fields are optional;
// missing values fall back to defaults.
type File struct {
	Server  ServerConfig  `toml:"server"`
	Prompts PromptsConfig `toml:"prompts"`
	Scoring ScoringConfig `toml:"scoring"`
	Ranking RankingConfig `toml:"ranking"`
}

// ServerConfig maps listen and storage settings.
type ServerConfig struct {
	Addr   *string `toml:"addr"`
	DBPath *string `toml:"db_path"`
}

// PromptsConfig maps the trivia fetch and translation settings.
type PromptsConfig struct {
	Amount    *int    `toml:"amount"`
	Translate *bool   `toml:"translate"`
	LangPair  *string `toml:"langpair"`
}

// ScoringConfig maps the score formula knobs.
type ScoringConfig struct {
	Mode          *string `toml:"mode"`
	CorrectWeight *int    `toml:"correct_weight"`
	ErrorPenalty  *int    `toml:"error_penalty"`
}

// RankingConfig maps the leaderboard size.
type RankingConfig struct {
	Limit *int `toml:"limit"`
}

// Load reads a TOML config from the given path. A missing file is not an
// error; the zero File stands in.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg File
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return File{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address.
func (f File) Addr() string {
	if f.Server.Addr != nil && *f.Server.Addr != "" {
		return *f.Server.Addr
	}
	return defaultAddr
}

// DBPath returns the SQLite database path.
func (f File) DBPath() string {
	if f.Server.DBPath != nil && *f.Server.DBPath != "" {
		return *f.Server.DBPath
	}
	return defaultDBPath
}

// PromptAmount returns how many prompts one session fetches.
func (f File) PromptAmount() int {
	if f.Prompts.Amount != nil && *f.Prompts.Amount > 0 {
		return *f.Prompts.Amount
	}
	return defaultPromptAmount
}

// TranslateEnabled reports whether the translation pipeline is on.
func (f File) TranslateEnabled() bool {
	return f.Prompts.Translate != nil && *f.Prompts.Translate
}

// LangPair returns the translation language pair.
func (f File) LangPair() string {
	if f.Prompts.LangPair != nil && *f.Prompts.LangPair != "" {
		return *f.Prompts.LangPair
	}
	return defaultLangPair
}

// RankingLimit returns the leaderboard size.
func (f File) RankingLimit() int {
	if f.Ranking.Limit != nil && *f.Ranking.Limit > 0 {
		return *f.Ranking.Limit
	}
	return score.DefaultRankingLimit
}

// Formula builds the score formula from the scoring section, starting from
// the default policy so unset knobs keep their defaults.
func (f File) Formula() typing.ScoreFormula {
	formula := typing.DefaultFormula()
	if f.Scoring.Mode != nil {
		formula.Mode = *f.Scoring.Mode
	}
	if f.Scoring.CorrectWeight != nil {
		formula.CorrectWeight = *f.Scoring.CorrectWeight
	}
	if f.Scoring.ErrorPenalty != nil {
		formula.ErrorPenalty = *f.Scoring.ErrorPenalty
	}
	return formula
}
