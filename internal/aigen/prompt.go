package aigen

import "fmt"

const questionSystemPrompt = `
You generate multiple-choice study questions from a document supplied by the user.

Rules:
1. Base every question strictly on the supplied document text.
2. Each question has exactly one correct answer.
3. Each question carries four options, labelled "A) ..." through "D) ...".
4. Distractors must be plausible: similar length and structure to the correct option.
5. Classify each question as "easy", "medium" or "hard".
6. Never reveal the answer or the explanation inside the question text.

Respond with pure, valid JSON and nothing else:

[
  {
    "question": "<question text>",
    "options": ["A) ...", "B) ...", "C) ...", "D) ..."],
    "correct_answer": "C",
    "explanation": "<short explanation of why the answer is correct>",
    "difficulty": "<easy | medium | hard>"
  }
]
`

const cardSystemPrompt = `
You generate study flashcards from a document supplied by the user.

Rules:
1. Base every card strictly on the supplied document text.
2. "front" is a short prompt or question; "back" is the answer or definition.
3. "hint" is optional and must not give the answer away.
4. Cards must cover distinct facts; no two cards may repeat the same point.

Respond with pure, valid JSON and nothing else:

[
  {
    "front": "<prompt>",
    "back": "<answer>",
    "hint": "<optional hint>"
  }
]
`

// Counts used when a request leaves them unset.
const (
	DefaultQuestionCount = 5
	DefaultCardCount     = 10
)

func clamp(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func BuildQuestionPrompt(req QuestionRequest) string {
	count := clamp(req.Count, DefaultQuestionCount, 10)
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	return fmt.Sprintf(
		"Generate %d multiple-choice questions of %q difficulty from the document below. "+
			"Follow the format from the system prompt exactly.\n\nDocument:\n%s",
		count, difficulty, req.DocumentText,
	)
}

func BuildCardPrompt(req CardRequest) string {
	count := clamp(req.Count, DefaultCardCount, 20)

	return fmt.Sprintf(
		"Generate %d flashcards from the document below. "+
			"Follow the format from the system prompt exactly.\n\nDocument:\n%s",
		count, req.DocumentText,
	)
}
