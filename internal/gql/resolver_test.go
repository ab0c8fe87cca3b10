package gql

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theabolton/todo-graphql-api/internal/model"
	"github.com/theabolton/todo-graphql-api/internal/repo"
	"github.com/theabolton/todo-graphql-api/internal/service"
)

// fakeRepo - репозиторий в памяти, чтобы гонять запросы против схемы без БД
type fakeRepo struct {
	todos  []model.Todo
	nextID int64
}

func (f *fakeRepo) Create(_ context.Context, t model.Todo) (model.Todo, error) {
	f.nextID++
	t.ID = f.nextID

	var maxOrder int32
	for _, e := range f.todos {
		if e.DisplayOrder > maxOrder {
			maxOrder = e.DisplayOrder
		}
	}
	t.DisplayOrder = maxOrder + 1

	f.todos = append(f.todos, t)
	return t, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (model.Todo, error) {
	for _, t := range f.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Todo{}, repo.ErrorNotFound
}

func (f *fakeRepo) List(_ context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	out := make([]model.Todo, 0, len(f.todos))
	for _, t := range f.todos {
		switch filter.Status {
		case model.StatusActive:
			if t.Complete {
				continue
			}
		case model.StatusCompleted:
			if !t.Complete {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) UpdateText(_ context.Context, id int64, text string) (model.Todo, error) {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Text = text
			return f.todos[i], nil
		}
	}
	return model.Todo{}, repo.ErrorNotFound
}

func (f *fakeRepo) UpdateComplete(_ context.Context, id int64, complete bool) (model.Todo, error) {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Complete = complete
			return f.todos[i], nil
		}
	}
	return model.Todo{}, repo.ErrorNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return repo.ErrorNotFound
}

func (f *fakeRepo) MarkAll(_ context.Context, complete bool) ([]model.Todo, error) {
	changed := make([]model.Todo, 0)
	for i := range f.todos {
		if f.todos[i].Complete != complete {
			f.todos[i].Complete = complete
			changed = append(changed, f.todos[i])
		}
	}
	return changed, nil
}

func (f *fakeRepo) DeleteCompleted(_ context.Context) ([]int64, error) {
	deleted := make([]int64, 0)
	kept := f.todos[:0]
	for _, t := range f.todos {
		if t.Complete {
			deleted = append(deleted, t.ID)
		} else {
			kept = append(kept, t)
		}
	}
	f.todos = kept
	return deleted, nil
}

func (f *fakeRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.todos)), nil
}

func (f *fakeRepo) CountCompleted(_ context.Context) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.Complete {
			n++
		}
	}
	return n, nil
}

func newTestSchema(todos ...model.Todo) *graphql.Schema {
	f := &fakeRepo{}
	for _, t := range todos {
		f.Create(context.Background(), t)
	}
	return NewSchema(service.NewTodoService(f))
}

// Тот же набор, что у relay-фронтенда в демо-данных
func testData() []model.Todo {
	return []model.Todo{
		{Text: "Taste JavaScript", Complete: true},
		{Text: "Buy a unicorn", Complete: false},
	}
}

func exec(t *testing.T, schema *graphql.Schema, query string, variables map[string]interface{}) string {
	t.Helper()
	resp := schema.Exec(context.Background(), query, "", variables)
	require.Empty(t, resp.Errors, "unexpected graphql errors: %+v", resp.Errors)
	return string(resp.Data)
}

func TestSchemaParses(t *testing.T) {
	// MustParseSchema паникует при любом расхождении схемы и резолверов,
	// в том числе на default-значениях аргументов
	require.NotPanics(t, func() {
		newTestSchema()
	})
}

func TestRootQueryType(t *testing.T) {
	schema := newTestSchema()

	data := exec(t, schema, `
		query RootQueryQuery {
			__schema {
				queryType {
					name
				}
			}
		}
	`, nil)

	require.JSONEq(t, `{"__schema": {"queryType": {"name": "Query"}}}`, data)
}

func TestViewerSchema(t *testing.T) {
	schema := newTestSchema()

	data := exec(t, schema, `
		query ViewerSchemaTest {
			__type(name: "User") {
				name
				fields {
					name
				}
			}
		}
	`, nil)

	var got struct {
		Type struct {
			Name   string `json:"name"`
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		} `json:"__type"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	require.Equal(t, "User", got.Type.Name)

	names := make([]string, 0, len(got.Type.Fields))
	for _, f := range got.Type.Fields {
		names = append(names, f.Name)
	}
	for _, want := range []string{"id", "todos", "totalCount", "completedCount"} {
		assert.Contains(t, names, want)
	}
}

func TestNodeForTodo(t *testing.T) {
	schema := newTestSchema(model.Todo{Text: "Test", Complete: false})
	gid := toGlobalID(todoKind, 1)

	data := exec(t, schema, fmt.Sprintf(`
		query {
			node(id: %q) {
				id
				...on Todo {
					text
				}
			}
		}
	`, gid), nil)

	require.JSONEq(t, fmt.Sprintf(`{"node": {"id": %q, "text": "Test"}}`, gid), data)
}

func TestNodeForViewer(t *testing.T) {
	schema := newTestSchema()

	data := exec(t, schema, `query { viewer { id } }`, nil)

	var got struct {
		Viewer struct {
			ID string `json:"id"`
		} `json:"viewer"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	require.NotEmpty(t, got.Viewer.ID)

	data = exec(t, schema, fmt.Sprintf(`query { node(id: %q) { id } }`, got.Viewer.ID), nil)
	require.JSONEq(t, fmt.Sprintf(`{"node": {"id": %q}}`, got.Viewer.ID), data)
}

func TestNodeNotFound(t *testing.T) {
	schema := newTestSchema()

	data := exec(t, schema, fmt.Sprintf(`query { node(id: %q) { id } }`, toGlobalID(todoKind, 42)), nil)
	require.JSONEq(t, `{"node": null}`, data)

	// Невалидный global id - тоже null, а не ошибка
	data = exec(t, schema, `query { node(id: "not-a-global-id") { id } }`, nil)
	require.JSONEq(t, `{"node": null}`, data)
}

func TestTotalCount(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		query TotalCountTest {
			viewer {
				totalCount
			}
		}
	`, nil)

	require.JSONEq(t, `{"viewer": {"totalCount": 2}}`, data)
}

func TestCompletedCount(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		query CompletedCountTest {
			viewer {
				completedCount
			}
		}
	`, nil)

	require.JSONEq(t, `{"viewer": {"completedCount": 1}}`, data)
}

func TestTodos(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		query TodosTest {
			viewer {
				todos {
					edges {
						node {
							text
						}
					}
				}
			}
		}
	`, nil)

	require.JSONEq(t, `{
		"viewer": {
			"todos": {
				"edges": [
					{"node": {"text": "Taste JavaScript"}},
					{"node": {"text": "Buy a unicorn"}}
				]
			}
		}
	}`, data)
}

func TestTodosFilterByStatus(t *testing.T) {
	schema := newTestSchema(testData()...)

	tests := []struct {
		name      string
		status    string
		wantTexts []string
	}{
		{
			name:      "completed only",
			status:    "completed",
			wantTexts: []string{"Taste JavaScript"},
		},
		{
			name:      "active only",
			status:    "active",
			wantTexts: []string{"Buy a unicorn"},
		},
		{
			name:      "any",
			status:    "any",
			wantTexts: []string{"Taste JavaScript", "Buy a unicorn"},
		},
		{
			name:      "unknown status behaves as any",
			status:    "whatever",
			wantTexts: []string{"Taste JavaScript", "Buy a unicorn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := exec(t, schema, fmt.Sprintf(`
				query {
					viewer {
						todos(status: %q) {
							edges {
								node {
									text
								}
							}
						}
					}
				}
			`, tt.status), nil)

			var got struct {
				Viewer struct {
					Todos struct {
						Edges []struct {
							Node struct {
								Text string `json:"text"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"todos"`
				} `json:"viewer"`
			}
			require.NoError(t, json.Unmarshal([]byte(data), &got))

			texts := make([]string, 0)
			for _, e := range got.Viewer.Todos.Edges {
				texts = append(texts, e.Node.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
		})
	}
}

func TestTodosPagination(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		query {
			viewer {
				todos(first: 1) {
					edges {
						cursor
						node { text }
					}
					pageInfo {
						hasNextPage
						endCursor
					}
				}
			}
		}
	`, nil)

	first := offsetCursor(0)
	require.JSONEq(t, fmt.Sprintf(`{
		"viewer": {
			"todos": {
				"edges": [{"cursor": %q, "node": {"text": "Taste JavaScript"}}],
				"pageInfo": {"hasNextPage": true, "endCursor": %q}
			}
		}
	}`, first, first), data)

	// Вторая страница начинается после курсора первой
	data = exec(t, schema, fmt.Sprintf(`
		query {
			viewer {
				todos(first: 1, after: %q) {
					edges {
						node { text }
					}
					pageInfo {
						hasNextPage
					}
				}
			}
		}
	`, first), nil)

	require.JSONEq(t, `{
		"viewer": {
			"todos": {
				"edges": [{"node": {"text": "Buy a unicorn"}}],
				"pageInfo": {"hasNextPage": false}
			}
		}
	}`, data)
}

func TestAddTodo(t *testing.T) {
	schema := newTestSchema()

	data := exec(t, schema, `
		mutation AddTodoMutation($input: AddTodoInput!) {
			addTodo(input: $input) {
				todoEdge { cursor node { text complete } }
				viewer { totalCount }
				clientMutationId
			}
		}
	`, map[string]interface{}{
		"input": map[string]interface{}{
			"text":             "Test Todo",
			"clientMutationId": "give_this_back_to_me",
		},
	})

	require.JSONEq(t, fmt.Sprintf(`{
		"addTodo": {
			"todoEdge": {
				"cursor": %q,
				"node": {"text": "Test Todo", "complete": false}
			},
			"viewer": {"totalCount": 1},
			"clientMutationId": "give_this_back_to_me"
		}
	}`, offsetCursor(0)), data)
}

func TestAddTodoBlankText(t *testing.T) {
	schema := newTestSchema()

	resp := schema.Exec(context.Background(), `
		mutation AddTodoMutation($input: AddTodoInput!) {
			addTodo(input: $input) {
				clientMutationId
			}
		}
	`, "", map[string]interface{}{
		"input": map[string]interface{}{"text": "   "},
	})

	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Error(), "validation")
}

func TestChangeTodoStatus(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		mutation ChangeTodoStatusMutation($input: ChangeTodoStatusInput!) {
			changeTodoStatus(input: $input) {
				todo { complete }
				viewer { completedCount }
				clientMutationId
			}
		}
	`, map[string]interface{}{
		"input": map[string]interface{}{
			"id":               string(toGlobalID(todoKind, 1)),
			"complete":         false,
			"clientMutationId": "give_this_back_to_me",
		},
	})

	require.JSONEq(t, `{
		"changeTodoStatus": {
			"todo": {"complete": false},
			"viewer": {"completedCount": 0},
			"clientMutationId": "give_this_back_to_me"
		}
	}`, data)
}

func TestMarkAllTodos(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		mutation MarkAllTodosMutation($input: MarkAllTodosInput!) {
			markAllTodos(input: $input) {
				changedTodos { id complete }
				viewer { completedCount }
				clientMutationId
			}
		}
	`, map[string]interface{}{
		"input": map[string]interface{}{
			"complete":         true,
			"clientMutationId": "give_this_back_to_me",
		},
	})

	// Меняется только вторая задача - первая уже complete
	require.JSONEq(t, fmt.Sprintf(`{
		"markAllTodos": {
			"changedTodos": [{"id": %q, "complete": true}],
			"viewer": {"completedCount": 2},
			"clientMutationId": "give_this_back_to_me"
		}
	}`, toGlobalID(todoKind, 2)), data)
}

func TestRemoveCompletedTodos(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		mutation RemoveCompletedTodosMutation($input: RemoveCompletedTodosInput!) {
			removeCompletedTodos(input: $input) {
				deletedTodoIds
				viewer { completedCount totalCount }
				clientMutationId
			}
		}
	`, map[string]interface{}{
		"input": map[string]interface{}{
			"clientMutationId": "give_this_back_to_me",
		},
	})

	require.JSONEq(t, fmt.Sprintf(`{
		"removeCompletedTodos": {
			"deletedTodoIds": [%q],
			"viewer": {"completedCount": 0, "totalCount": 1},
			"clientMutationId": "give_this_back_to_me"
		}
	}`, toGlobalID(todoKind, 1)), data)
}

func TestRemoveTodo(t *testing.T) {
	schema := newTestSchema(testData()...)
	gid := toGlobalID(todoKind, 1)

	data := exec(t, schema, `
		mutation RemoveTodoMutation($input: RemoveTodoInput!) {
			removeTodo(input: $input) {
				deletedTodoId
				viewer { completedCount totalCount }
				clientMutationId
			}
		}
	`, map[string]interface{}{
		"input": map[string]interface{}{
			"id":               string(gid),
			"clientMutationId": "give_this_back_to_me",
		},
	})

	require.JSONEq(t, fmt.Sprintf(`{
		"removeTodo": {
			"deletedTodoId": %q,
			"viewer": {"completedCount": 0, "totalCount": 1},
			"clientMutationId": "give_this_back_to_me"
		}
	}`, gid), data)
}

func TestRemoveTodoNotFound(t *testing.T) {
	schema := newTestSchema(testData()...)

	resp := schema.Exec(context.Background(), `
		mutation RemoveTodoMutation($input: RemoveTodoInput!) {
			removeTodo(input: $input) {
				deletedTodoId
			}
		}
	`, "", map[string]interface{}{
		"input": map[string]interface{}{
			"id": string(toGlobalID(todoKind, 42)),
		},
	})

	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Error(), "not found")
}

func TestRenameTodo(t *testing.T) {
	schema := newTestSchema(testData()...)

	data := exec(t, schema, `
		mutation RenameTodoMutation($input: RenameTodoInput!) {
			renameTodo(input: $input) {
				todo { text }
				clientMutationId
			}
		}
	`, map[string]interface{}{
		"input": map[string]interface{}{
			"id":               string(toGlobalID(todoKind, 1)),
			"text":             "Taste Go",
			"clientMutationId": "give_this_back_to_me",
		},
	})

	require.JSONEq(t, `{
		"renameTodo": {
			"todo": {"text": "Taste Go"},
			"clientMutationId": "give_this_back_to_me"
		}
	}`, data)
}
