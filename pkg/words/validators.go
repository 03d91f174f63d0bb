package words

// WordPayload is one confirmed word.
type WordPayload struct {
	Word     string `json:"word" mod:"trim" validate:"required,max=255"`
	BaseForm string `json:"base_form" mod:"trim" validate:"required,max=255"`
	Output   string `json:"output" mod:"trim" validate:"required,max=1000"`
}

type UpdateWordPayload struct {
	Status string `json:"status" mod:"trim" validate:"required,oneof=to_learn learning known"`
}
