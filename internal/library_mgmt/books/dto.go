package books

// ===== Requests =====

type CreateBookRequest struct {
	Title           string   `json:"title" binding:"required"`
	ISBN            string   `json:"isbn" binding:"required"`
	PublicationYear int      `json:"publication_year" binding:"required"`
	Authors         []string `json:"authors"` // 著者名。無ければ作成する
}

type UpdateBookRequest struct {
	Title           *string   `json:"title,omitempty"`
	ISBN            *string   `json:"isbn,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	Authors         *[]string `json:"authors,omitempty"`
	Available       *bool     `json:"available,omitempty"` // 受け付けない（貸出・返却でのみ変わる）
}

// ===== Responses =====

type AuthorRefResponse struct {
	AuthorID string `json:"author_id"`
	Name     string `json:"name"`
}

type BookResponse struct {
	BookID          string              `json:"book_id"`
	Title           string              `json:"title"`
	ISBN            string              `json:"isbn"`
	PublicationYear int                 `json:"publication_year"`
	Available       bool                `json:"available"`
	CreatedAt       string              `json:"created_at"`
	Authors         []AuthorRefResponse `json:"authors"`
}

func toResponse(b Book) BookResponse {
	res := BookResponse{
		BookID:          b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Available:       b.Available,
		CreatedAt:       b.CreatedAt.Format(DateLayout),
		Authors:         make([]AuthorRefResponse, 0, len(b.Authors)),
	}
	for _, a := range b.Authors {
		res.Authors = append(res.Authors, AuthorRefResponse{AuthorID: a.ID, Name: a.Name})
	}
	return res
}
