package graph

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dolmen-go/jsonmap"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	executor "github.com/hanpama/bookgraph/internal/executor"
	language "github.com/hanpama/bookgraph/internal/language"
	localrt "github.com/hanpama/bookgraph/internal/localrt"
	store "github.com/hanpama/bookgraph/internal/store"
)

func obj(kv ...any) jsonmap.Ordered {
	o := jsonmap.Ordered{Data: map[string]any{}, Order: []string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		o.Order = append(o.Order, kv[i].(string))
		o.Data[kv[i].(string)] = kv[i+1]
	}
	return o
}

// newScenarioStore seeds Author{1,"A"} and Book{1,"B1",1}.
func newScenarioStore(opts ...store.Option) *store.Store {
	seed := store.WithSeed(
		[]store.Author{{Name: "A"}},
		[]store.Book{{Name: "B1", AuthorID: 1}},
	)
	return store.New(append([]store.Option{seed}, opts...)...)
}

func newExecutor(t *testing.T, st *store.Store) *executor.Executor {
	t.Helper()
	sch, err := NewSchema(st)
	require.NoError(t, err)
	return executor.NewExecutor(localrt.NewRuntime(sch), sch)
}

func query(t *testing.T, exec *executor.Executor, q string, vars map[string]any) *executor.ExecutionResult {
	t.Helper()
	doc, err := language.ParseQuery(q)
	require.NoError(t, err)
	return exec.ExecuteRequest(context.Background(), doc, "", vars)
}

func marshal(t *testing.T, res *executor.ExecutionResult) string {
	t.Helper()
	b, err := json.Marshal(res)
	require.NoError(t, err)
	return string(b)
}

func TestScenario_AuthorWithBooks(t *testing.T) {
	exec := newExecutor(t, newScenarioStore())

	res := exec.Execute(context.Background(), language.Query, "author", map[string]any{"id": 1},
		executor.SelectionSet{
			executor.NewSelection("name"),
			executor.NewSelection("books", executor.NewSelection("name")),
		})
	want := &executor.ExecutionResult{Data: obj("author", obj("name", "A", "books", []any{obj("name", "B1")}))}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, `{"data":{"author":{"name":"A","books":[{"name":"B1"}]}}}`, marshal(t, res))
}

func TestScenario_MissingBookIsNull(t *testing.T) {
	exec := newExecutor(t, newScenarioStore())

	res := query(t, exec, "{ book(id: 99) { name } }", nil)
	require.Nil(t, res.Errors)
	require.Equal(t, `{"data":{"book":null}}`, marshal(t, res))
}

func TestScenario_AddAuthorAssignsSequentialIds(t *testing.T) {
	st := newScenarioStore()
	exec := newExecutor(t, st)

	res := query(t, exec, `mutation { addAuthor(name: "C") { id name } }`, nil)
	require.Equal(t, obj("addAuthor", obj("id", 2, "name", "C")), res.Data)

	res = query(t, exec, `mutation { addAuthor(name: "D") { id } }`, nil)
	require.Equal(t, obj("addAuthor", obj("id", 3)), res.Data)
	require.Equal(t, 3, st.AuthorCount())

	res = query(t, exec, "{ authors { id name } }", nil)
	require.Equal(t, `{"data":{"authors":[{"id":1,"name":"A"},{"id":2,"name":"C"},{"id":3,"name":"D"}]}}`, marshal(t, res))
}

func TestBookAuthor(t *testing.T) {
	st := newScenarioStore()
	exec := newExecutor(t, st)

	res := query(t, exec, "{ book(id: 1) { author { id name } } }", nil)
	require.Equal(t, obj("book", obj("author", obj("id", 1, "name", "A"))), res.Data)

	// addBook does not check the author reference.
	res = query(t, exec, `mutation { addBook(name: "Orphan", authorId: 42) { id authorId author { name } } }`, nil)
	require.Nil(t, res.Errors)
	require.Equal(t, obj("addBook", obj("id", 2, "authorId", 42, "author", nil)), res.Data)

	res = query(t, exec, "{ book(id: 2) { name author { name } } }", nil)
	require.Nil(t, res.Errors)
	require.Equal(t, obj("book", obj("name", "Orphan", "author", nil)), res.Data)
}

func TestAuthorBooks(t *testing.T) {
	st := store.NewSeeded()
	exec := newExecutor(t, st)

	res := query(t, exec, `mutation { addAuthor(name: "New") { id books { id } } }`, nil)
	require.Nil(t, res.Errors)
	require.Equal(t, `{"data":{"addAuthor":{"id":4,"books":[]}}}`, marshal(t, res))

	res = query(t, exec, "{ author(id: 2) { books { id name } } }", nil)
	require.Equal(t, `{"data":{"author":{"books":[`+
		`{"id":4,"name":"The Fellowship of the Ring"},`+
		`{"id":5,"name":"The Two Towers"},`+
		`{"id":6,"name":"The Return of the King"}]}}}`, marshal(t, res))

	// Every author's books are exactly the books pointing at it, in order.
	for _, a := range st.ScanAuthors(nil) {
		var want []any
		for _, b := range st.ScanBooks(nil) {
			if b.AuthorID == a.ID {
				want = append(want, obj("id", b.ID))
			}
		}
		if want == nil {
			want = []any{}
		}
		res := exec.Execute(context.Background(), language.Query, "author", map[string]any{"id": a.ID},
			executor.SelectionSet{executor.NewSelection("books", executor.NewSelection("id"))})
		require.Equal(t, obj("author", obj("books", want)), res.Data, "author %d", a.ID)
	}
}

func TestAddBookVisibleToScans(t *testing.T) {
	st := newScenarioStore()
	exec := newExecutor(t, st)

	res := query(t, exec, `mutation($n: String!) { addBook(name: $n, authorId: 1) { id } }`, map[string]any{"n": "B2"})
	require.Equal(t, obj("addBook", obj("id", 2)), res.Data)

	res = query(t, exec, "{ author(id: 1) { books { name } } books { id } }", nil)
	require.Equal(t, `{"data":{"author":{"books":[{"name":"B1"},{"name":"B2"}]},"books":[{"id":1},{"id":2}]}}`, marshal(t, res))
}

func TestStrictAuthorRefs(t *testing.T) {
	exec := newExecutor(t, newScenarioStore(store.WithStrictAuthorRefs()))

	res := query(t, exec, `mutation { addBook(name: "Orphan", authorId: 42) { id } }`, nil)
	require.Equal(t, obj("addBook", nil), res.Data)
	require.Len(t, res.Errors, 1)
	require.Equal(t, executor.CodeResolverError, res.Errors[0].Code())
	require.Contains(t, res.Errors[0].Message, "unknown author")

	res = query(t, exec, `mutation { addBook(name: "B2", authorId: 1) { id } }`, nil)
	require.Equal(t, obj("addBook", obj("id", 2)), res.Data)
}

func TestFieldOrderAndIdempotence(t *testing.T) {
	exec := newExecutor(t, store.NewSeeded())

	a := query(t, exec, "{ book(id: 4) { name id author { name } } }", nil)
	b := query(t, exec, "{ book(id: 4) { id name author { name } } }", nil)
	require.Equal(t, `{"data":{"book":{"name":"The Fellowship of the Ring","id":4,"author":{"name":"J. R. R. Tolkien"}}}}`, marshal(t, a))
	require.Equal(t, `{"data":{"book":{"id":4,"name":"The Fellowship of the Ring","author":{"name":"J. R. R. Tolkien"}}}}`, marshal(t, b))

	again := query(t, exec, "{ book(id: 4) { name id author { name } } }", nil)
	if diff := cmp.Diff(a, again); diff != "" {
		t.Fatalf("repeated query differs (-first +second):\n%s", diff)
	}
}

func TestErrorsThroughGraph(t *testing.T) {
	exec := newExecutor(t, newScenarioStore())

	res := query(t, exec, "{ author(id: 1) { name title } }", nil)
	require.Equal(t, `{"data":{"author":{"name":"A","title":null}},"errors":[{"message":"Cannot query field \"title\" on type \"Author\"","path":["author","title"],"extensions":{"code":"UNKNOWN_FIELD"}}]}`, marshal(t, res))

	res = query(t, exec, "{ publisher { name } }", nil)
	require.Nil(t, res.Data)
	require.Equal(t, executor.CodeUnknownRootField, res.Errors[0].Code())

	res = query(t, exec, `{ author(id: "1") { name } }`, nil)
	require.Equal(t, obj("author", nil), res.Data)
	require.Equal(t, executor.CodeArgumentError, res.Errors[0].Code())

	res = query(t, exec, `mutation { addAuthor { id } }`, nil)
	require.Equal(t, obj("addAuthor", nil), res.Data)
	require.Equal(t, executor.CodeArgumentError, res.Errors[0].Code())
}

func TestSchemaShape(t *testing.T) {
	sch, err := NewSchema(newScenarioStore())
	require.NoError(t, err)

	require.NotNil(t, sch.RootField(language.Query, "book"))
	require.NotNil(t, sch.RootField(language.Mutation, "addAuthor"))
	require.Nil(t, sch.RootField(language.Mutation, "book"))

	require.Equal(t, "Author of a book.", sch.Types["Author"].Description)
	require.Equal(t, "Int!", sch.Field("Book", "authorId").Type.String())
	require.Equal(t, "[Book]", sch.Field("Author", "books").Type.String())
	require.Nil(t, sch.Field("Book", "id").Resolve, "scalars are projected")
}

func TestSelfSpreadingFragment(t *testing.T) {
	st := newScenarioStore()
	exec := newExecutor(t, st)

	res := query(t, exec, `{ author(id: 1) { ...F } } fragment F on Author { books { author { ...F } } }`, nil)
	require.Equal(t, `{"data":null,"errors":[{"message":"fragment \"F\" spreads itself","extensions":{"code":"REQUEST_ERROR"}}]}`, marshal(t, res))

	res = query(t, exec, `mutation { addAuthor(name: "C") { ...G } } fragment G on Author { books { author { ...G } } }`, nil)
	require.Nil(t, res.Data)
	require.Equal(t, 1, st.AuthorCount(), "no mutation runs when the document is rejected")
}
