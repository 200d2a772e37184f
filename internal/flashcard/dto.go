package flashcard

type GenerateSetInput struct {
	DocumentID string `json:"document_id"`
	CardCount  int    `json:"card_count"`
}
