package authors

type CreateAuthorRequest struct {
	Name string  `json:"name" binding:"required"`
	Bio  *string `json:"bio,omitempty"`
}

type UpdateAuthorRequest struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"` // "" で削除
}

type AuthorResponse struct {
	AuthorID  string  `json:"author_id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	BookCount int     `json:"book_count"`
}
