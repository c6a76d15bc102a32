package store

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsNextID(t *testing.T) {
	s := New(WithSeed([]Author{{ID: 1, Name: "A"}}, []Book{{ID: 1, Name: "B1", AuthorID: 1}}))
	ctx := context.Background()

	c, err := s.AppendAuthor(ctx, "C")
	require.NoError(t, err)
	d, err := s.AppendAuthor(ctx, "D")
	require.NoError(t, err)

	require.Equal(t, 2, c.ID)
	require.Equal(t, 3, d.ID)
	require.Equal(t, 3, s.AuthorCount())

	got, ok := s.FindAuthor(3)
	require.True(t, ok)
	require.Equal(t, Author{ID: 3, Name: "D"}, got)
}

func TestAppendBookIsPermissiveByDefault(t *testing.T) {
	s := NewSeeded()
	b, err := s.AppendBook(context.Background(), "Orphan", 42)
	require.NoError(t, err)
	require.Equal(t, 9, b.ID)
	require.Equal(t, 42, b.AuthorID)

	found, ok := s.FindBook(9)
	require.True(t, ok)
	require.Equal(t, b, found)
}

func TestAppendBookStrict(t *testing.T) {
	s := NewSeeded(WithStrictAuthorRefs())
	_, err := s.AppendBook(context.Background(), "Orphan", 42)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownAuthor))
	require.Equal(t, 8, s.BookCount())

	b, err := s.AppendBook(context.Background(), "The Black Prism", 3)
	require.NoError(t, err)
	require.Equal(t, 9, b.ID)
}

func TestScanKeepsInsertionOrder(t *testing.T) {
	s := NewSeeded()
	got := s.ScanBooks(func(b Book) bool { return b.AuthorID == 2 })
	require.Equal(t, []Book{
		{ID: 4, Name: "The Fellowship of the Ring", AuthorID: 2},
		{ID: 5, Name: "The Two Towers", AuthorID: 2},
		{ID: 6, Name: "The Return of the King", AuthorID: 2},
	}, got)

	require.Empty(t, s.ScanBooks(func(b Book) bool { return b.AuthorID == 99 }))
	require.Len(t, s.ScanAuthors(nil), 3)
}

func TestSeedRenumbers(t *testing.T) {
	s := New(WithSeed([]Author{{ID: 10, Name: "X"}, {ID: 20, Name: "Y"}}, nil))
	require.Equal(t, []Author{{ID: 1, Name: "X"}, {ID: 2, Name: "Y"}}, s.ScanAuthors(nil))
}

func TestConcurrentAppendsGetUniqueIDs(t *testing.T) {
	s := New()
	const n = 64
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.AppendAuthor(context.Background(), "x")
			if err == nil {
				ids <- a.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		require.True(t, seen[i])
	}
}

func TestProjection(t *testing.T) {
	b := Book{ID: 1, Name: "B1", AuthorID: 7}
	v, ok := b.Project("authorId")
	require.True(t, ok)
	require.Equal(t, 7, v)
	_, ok = b.Project("author")
	require.False(t, ok)

	a := Author{ID: 2, Name: "A"}
	v, ok = a.Project("name")
	require.True(t, ok)
	require.Equal(t, "A", v)
}
