package typing

import (
	"html"

	"typetrivia/internal/opentdb"
)

// Prompt is one question/answer pair served to the player. The answer is the
// string the player has to type out verbatim.
type Prompt struct {
	Text   string `json:"question"`
	Answer string `json:"answer"`
}

// BuildPrompts converts raw trivia questions into typing prompts. Entity
// escapes are decoded here so the engine only ever compares plain text.
func BuildPrompts(raw []opentdb.RawQuestion) []Prompt {
	prompts := make([]Prompt, 0, len(raw))
	for _, item := range raw {
		prompts = append(prompts, Prompt{
			Text:   html.UnescapeString(item.Question),
			Answer: html.UnescapeString(item.CorrectAnswer),
		})
	}
	return prompts
}
