package authors

import "database/sql"

// DB行（sqlx のスキャン用）
type authorRow struct {
	AuthorID  string         `db:"author_id"`
	Name      string         `db:"name"`
	Bio       sql.NullString `db:"bio"`
	BookCount int            `db:"book_count"`
}

type Author struct {
	ID        string
	Name      string
	Bio       *string
	BookCount int
}

func (r authorRow) toModel() Author {
	a := Author{ID: r.AuthorID, Name: r.Name, BookCount: r.BookCount}
	if r.Bio.Valid {
		v := r.Bio.String
		a.Bio = &v
	}
	return a
}

func (a Author) toDTO() AuthorResponse {
	return AuthorResponse{AuthorID: a.ID, Name: a.Name, Bio: a.Bio, BookCount: a.BookCount}
}
