package store

// Collection names used in events and log fields.
const (
	Authors = "authors"
	Books   = "books"
)

// Author is an immutable author record.
type Author struct {
	ID   int
	Name string
}

// Project returns the scalar attribute exposed under the given field name.
func (a Author) Project(field string) (any, bool) {
	switch field {
	case "id":
		return a.ID, true
	case "name":
		return a.Name, true
	}
	return nil, false
}

// Book is an immutable book record. AuthorID is not checked against the
// authors collection unless the store runs in strict mode.
type Book struct {
	ID       int
	Name     string
	AuthorID int
}

// Project returns the scalar attribute exposed under the given field name.
func (b Book) Project(field string) (any, bool) {
	switch field {
	case "id":
		return b.ID, true
	case "name":
		return b.Name, true
	case "authorId":
		return b.AuthorID, true
	}
	return nil, false
}
