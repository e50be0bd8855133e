package books

import "time"

const DateLayout = "2006-01-02"

// Book は蔵書1冊。Available は貸出処理だけが書き換える。
type Book struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	ISBN            string      `json:"isbn"`
	PublicationYear int         `json:"publication_year"`
	Available       bool        `json:"available"`
	CreatedAt       time.Time   `json:"created_at"`
	Authors         []AuthorRef `json:"authors"`
}

type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchKind は検索条件の種類。SearchAll は条件なしの一覧。
type SearchKind int

const (
	SearchAll SearchKind = iota
	SearchByID
	SearchByTitle
	SearchByISBN
	SearchByAuthor
	SearchByQuery
)

func (k SearchKind) String() string {
	switch k {
	case SearchByID:
		return "id"
	case SearchByTitle:
		return "title"
	case SearchByISBN:
		return "isbn"
	case SearchByAuthor:
		return "author"
	case SearchByQuery:
		return "q"
	default:
		return "all"
	}
}

// SearchBy はハンドラで1回だけ組み立てる検索条件。
type SearchBy struct {
	Kind      SearchKind
	Value     string
	Available *bool
}
