package quiz

// Built-in fallback question sets, one per mode. Used whenever a
// configured source fails or returns nothing, so the games always have
// content to play. Each set covers nouns, verbs, adjectives and adverbs.

var builtinRunner = []Question{
	{
		ID:          "runner-001",
		Prompt:      "run",
		Correct:     "verb",
		Distractors: []string{"noun"},
		Explanation: "\"Run\" describes an action, so it is a verb.",
	},
	{
		ID:          "runner-002",
		Prompt:      "happiness",
		Correct:     "noun",
		Distractors: []string{"adjective"},
		Explanation: "\"Happiness\" names a thing (a feeling), so it is a noun.",
	},
	{
		ID:          "runner-003",
		Prompt:      "quickly",
		Correct:     "adverb",
		Distractors: []string{"adjective"},
		Explanation: "\"Quickly\" describes how something is done, so it is an adverb.",
	},
	{
		ID:          "runner-004",
		Prompt:      "beautiful",
		Correct:     "adjective",
		Distractors: []string{"adverb"},
		Explanation: "\"Beautiful\" describes a noun, so it is an adjective.",
	},
	{
		ID:          "runner-005",
		Prompt:      "jump",
		Correct:     "verb",
		Distractors: []string{"adjective"},
		Explanation: "\"Jump\" describes an action, so it is a verb.",
	},
	{
		ID:          "runner-006",
		Prompt:      "teacher",
		Correct:     "noun",
		Distractors: []string{"verb"},
		Explanation: "\"Teacher\" names a person, so it is a noun.",
	},
	{
		ID:          "runner-007",
		Prompt:      "slowly",
		Correct:     "adverb",
		Distractors: []string{"noun"},
		Explanation: "\"Slowly\" describes how something happens, so it is an adverb.",
	},
}

var builtinRacing = []Question{
	{
		ID:          "racing-001",
		Prompt:      "She ___ to school every day.",
		Correct:     "goes",
		Distractors: []string{"go", "going", "gone"},
		Explanation: "Third person singular in the present simple takes -es.",
	},
	{
		ID:          "racing-002",
		Prompt:      "They ___ watching TV right now.",
		Correct:     "are",
		Distractors: []string{"is", "am", "be"},
		Explanation: "\"They\" takes \"are\" in the present continuous.",
	},
	{
		ID:          "racing-003",
		Prompt:      "I ___ my homework yesterday.",
		Correct:     "did",
		Distractors: []string{"do", "done", "doing"},
		Explanation: "\"Yesterday\" signals the past simple.",
	},
	{
		ID:          "racing-004",
		Prompt:      "This is the ___ book I have ever read.",
		Correct:     "best",
		Distractors: []string{"good", "better", "well"},
		Explanation: "\"Ever\" with a superlative: the best.",
	},
	{
		ID:          "racing-005",
		Prompt:      "He runs very ___.",
		Correct:     "fast",
		Distractors: []string{"fastly", "faster", "fastest"},
		Explanation: "\"Fast\" is both adjective and adverb; \"fastly\" does not exist.",
	},
	{
		ID:          "racing-006",
		Prompt:      "There ___ many cars in the street.",
		Correct:     "are",
		Distractors: []string{"is", "was", "be"},
		Explanation: "\"Many cars\" is plural, so \"there are\".",
	},
	{
		ID:          "racing-007",
		Prompt:      "She has lived here ___ 2010.",
		Correct:     "since",
		Distractors: []string{"for", "from", "at"},
		Explanation: "\"Since\" marks the starting point of a period.",
	},
	{
		ID:          "racing-008",
		Prompt:      "If it rains, we ___ stay home.",
		Correct:     "will",
		Distractors: []string{"would", "did", "were"},
		Explanation: "First conditional: if + present, will + infinitive.",
	},
}

// Builtin returns the built-in question set for a mode.
// Returns ErrUnknownMode for modes without built-in content.
func Builtin(mode string) ([]Question, error) {
	switch mode {
	case ModeRunner:
		return cloneQuestions(builtinRunner), nil
	case ModeRacing:
		return cloneQuestions(builtinRacing), nil
	default:
		return nil, ErrUnknownMode
	}
}

func cloneQuestions(src []Question) []Question {
	out := make([]Question, len(src))
	copy(out, src)
	for i := range out {
		d := make([]string, len(src[i].Distractors))
		copy(d, src[i].Distractors)
		out[i].Distractors = d
	}
	return out
}
