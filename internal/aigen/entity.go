package aigen

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint,omitempty"`
}

type QuestionRequest struct {
	DocumentText string
	Count        int
	Difficulty   string
}

type CardRequest struct {
	DocumentText string
	Count        int
}
