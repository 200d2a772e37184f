package document

type UpdateDocumentInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
