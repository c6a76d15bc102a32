package store

// DefaultAuthors returns the demo author set.
func DefaultAuthors() []Author {
	return []Author{
		{ID: 1, Name: "J. K. Rowling"},
		{ID: 2, Name: "J. R. R. Tolkien"},
		{ID: 3, Name: "Brent Weeks"},
	}
}

// DefaultBooks returns the demo book set. Every AuthorID refers to DefaultAuthors.
func DefaultBooks() []Book {
	return []Book{
		{ID: 1, Name: "Harry Potter and the Chamber of Secrets", AuthorID: 1},
		{ID: 2, Name: "Harry Potter and the Prisoner of Azkaban", AuthorID: 1},
		{ID: 3, Name: "Harry Potter and the Goblet of Fire", AuthorID: 1},
		{ID: 4, Name: "The Fellowship of the Ring", AuthorID: 2},
		{ID: 5, Name: "The Two Towers", AuthorID: 2},
		{ID: 6, Name: "The Return of the King", AuthorID: 2},
		{ID: 7, Name: "The Way of Shadows", AuthorID: 3},
		{ID: 8, Name: "Beyond the Shadows", AuthorID: 3},
	}
}
