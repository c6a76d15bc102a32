// Package store holds the two in-memory record collections behind the graph:
// authors and books. Collections are append-only and ordered by insertion.
//
// Ids are assigned as the collection length plus one while the writer lock is
// held, so ids are unique and strictly increasing even when appends race.
// Scans take a read lock and return copies; records never change once
// appended.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	eventbus "github.com/hanpama/bookgraph/internal/eventbus"
	events "github.com/hanpama/bookgraph/internal/events"
)

// ErrUnknownAuthor is returned by AppendBook in strict mode when the book
// refers to an author id that does not exist.
var ErrUnknownAuthor = errors.New("unknown author")

// Store is the record store. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	authors []Author
	books   []Book

	strict bool
}

type Option func(*Store)

// WithSeed preloads the collections. Records are renumbered 1..n in the order
// given; AuthorID values are kept as-is.
func WithSeed(authors []Author, books []Book) Option {
	return func(s *Store) {
		s.authors = make([]Author, len(authors))
		for i, a := range authors {
			a.ID = i + 1
			s.authors[i] = a
		}
		s.books = make([]Book, len(books))
		for i, b := range books {
			b.ID = i + 1
			s.books[i] = b
		}
	}
}

// WithStrictAuthorRefs makes AppendBook reject author ids with no matching
// author. The default is permissive.
func WithStrictAuthorRefs() Option { return func(s *Store) { s.strict = true } }

// New creates an empty store, then applies opts.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewSeeded creates a store preloaded with DefaultAuthors and DefaultBooks.
func NewSeeded(opts ...Option) *Store {
	return New(append([]Option{WithSeed(DefaultAuthors(), DefaultBooks())}, opts...)...)
}

// ScanAuthors returns, in insertion order, every author for which pred
// returns true. A nil pred matches everything.
func (s *Store) ScanAuthors(pred func(Author) bool) []Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Author, 0, len(s.authors))
	for _, a := range s.authors {
		if pred == nil || pred(a) {
			out = append(out, a)
		}
	}
	return out
}

// ScanBooks returns, in insertion order, every book for which pred returns
// true. A nil pred matches everything.
func (s *Store) ScanBooks(pred func(Book) bool) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		if pred == nil || pred(b) {
			out = append(out, b)
		}
	}
	return out
}

// FindAuthor returns the first author with the given id.
func (s *Store) FindAuthor(id int) (Author, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.authors {
		if a.ID == id {
			return a, true
		}
	}
	return Author{}, false
}

// FindBook returns the first book with the given id.
func (s *Store) FindBook(id int) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

func (s *Store) AuthorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.authors)
}

func (s *Store) BookCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// AppendAuthor assigns the next author id and appends the record.
func (s *Store) AppendAuthor(ctx context.Context, name string) (Author, error) {
	start := time.Now()
	s.mu.Lock()
	a := Author{ID: len(s.authors) + 1, Name: name}
	s.authors = append(s.authors, a)
	s.mu.Unlock()

	s.appended(ctx, Authors, a.ID, start)
	return a, nil
}

// AppendBook assigns the next book id and appends the record. The author id
// is only checked in strict mode.
func (s *Store) AppendBook(ctx context.Context, name string, authorID int) (Book, error) {
	start := time.Now()
	s.mu.Lock()
	if s.strict && !s.hasAuthorLocked(authorID) {
		s.mu.Unlock()
		return Book{}, errors.Wrapf(ErrUnknownAuthor, "append book %q: author %d", name, authorID)
	}
	b := Book{ID: len(s.books) + 1, Name: name, AuthorID: authorID}
	s.books = append(s.books, b)
	s.mu.Unlock()

	s.appended(ctx, Books, b.ID, start)
	return b, nil
}

func (s *Store) hasAuthorLocked(id int) bool {
	for _, a := range s.authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) appended(ctx context.Context, collection string, id int, start time.Time) {
	eventbus.Publish(ctx, events.RecordAppended{Collection: collection, ID: id, Duration: time.Since(start)})
}
