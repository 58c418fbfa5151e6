package typing

import "time"

// Mark classifies one answer position against the current input.
type Mark int

const (
	// MarkPending means the position has not been typed yet.
	MarkPending Mark = iota
	// MarkCorrect means the typed character matches the answer.
	MarkCorrect
	// MarkIncorrect means the typed character differs from the answer.
	MarkIncorrect
)

// Stats accumulates character counts across one full session. TotalChars grows
// once per insertion event, CorrectChars at most once per answer position, so
// CorrectChars <= TotalChars holds at every intermediate state.
type Stats struct {
	CorrectChars uint64
	TotalChars   uint64
	StartedAt    time.Time
}

// Evaluation is the per-event result for the active prompt. Marks has one
// entry per answer position; Input is the field content clamped to the answer
// length.
type Evaluation struct {
	Marks  []Mark
	Input  []rune
	Solved bool
}

// KeystrokeState tracks bookkeeping for a single prompt: the previous field
// length (so deletions are never re-charged) and the high-water mark of
// positions already credited as correct. It is discarded when the prompt
// advances.
type KeystrokeState struct {
	answer      []rune
	prevLength  int
	lastCorrect int
}

// NewKeystrokeState starts evaluation of one prompt answer. Characters are
// compared as runes so multi-byte answers score one unit per character.
func NewKeystrokeState(answer string) *KeystrokeState {
	return &KeystrokeState{answer: []rune(answer)}
}

// AnswerLen reports the answer length in characters.
func (k *KeystrokeState) AnswerLen() int {
	return len(k.answer)
}

// Evaluate scores the full current field content against the answer and
// updates the session counters.
//
// Counting rules:
//   - TotalChars increments only when the field grew since the last event.
//     Deletions and same-length edits charge nothing.
//   - CorrectChars increments only when the last typed position is correct
//     and lies beyond the credited high-water mark. A correct re-entry of an
//     already credited position is not re-awarded; an incorrect entry moves
//     the mark back without decrementing the counter.
//   - Input beyond the answer length is clamped and never scored.
//
// An empty answer is reported solved immediately with no accounting.
func (k *KeystrokeState) Evaluate(value string, stats *Stats) Evaluation {
	answerLen := len(k.answer)
	if answerLen == 0 {
		return Evaluation{Solved: true}
	}

	input := []rune(value)
	rawLen := len(input)
	if rawLen > k.prevLength {
		stats.TotalChars++
	}
	k.prevLength = rawLen

	if rawLen > answerLen {
		input = input[:answerLen]
	}

	marks := make([]Mark, answerLen)
	for i := 0; i < answerLen; i++ {
		switch {
		case i >= len(input):
			marks[i] = MarkPending
		case input[i] == k.answer[i]:
			marks[i] = MarkCorrect
		default:
			marks[i] = MarkIncorrect
		}
	}

	if rawLen > 0 && rawLen <= answerLen {
		last := rawLen - 1
		if input[last] == k.answer[last] {
			if rawLen > k.lastCorrect {
				stats.CorrectChars++
				k.lastCorrect = rawLen
			}
		} else {
			k.lastCorrect = rawLen - 1
		}
	}

	solved := rawLen == answerLen && string(input) == string(k.answer)
	return Evaluation{
		Marks:  marks,
		Input:  input,
		Solved: solved,
	}
}
