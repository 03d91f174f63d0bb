package books

type ListBooksQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type CreateBookPayload struct {
	Title    string  `json:"title" mod:"trim" validate:"required,max=255"`
	Author   *string `json:"author,omitempty" mod:"trim" validate:"omitempty,max=255"`
	Language string  `json:"language,omitempty" default:"fr" validate:"oneof=fr en es de it"`
}
