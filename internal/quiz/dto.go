package quiz

type GenerateQuizInput struct {
	DocumentID    string `json:"document_id"`
	QuestionCount int    `json:"question_count"`
	Difficulty    string `json:"difficulty"`
}

type SubmittedAnswer struct {
	QuestionIndex int    `json:"question_index"`
	Selected      string `json:"selected"`
}

type SubmitQuizInput struct {
	Answers []SubmittedAnswer `json:"answers"`
}

type UpdateQuizInput struct {
	Title *string `json:"title"`
}
