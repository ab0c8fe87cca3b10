package repo

import (
	"context"

	"github.com/theabolton/todo-graphql-api/internal/model"
)

// TodoRepository определяет интерфейс для работы с задачами
type TodoRepository interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Get(ctx context.Context, id int64) (model.Todo, error)
	List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error)
	UpdateText(ctx context.Context, id int64, text string) (model.Todo, error)
	UpdateComplete(ctx context.Context, id int64, complete bool) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
	MarkAll(ctx context.Context, complete bool) ([]model.Todo, error)
	DeleteCompleted(ctx context.Context) ([]int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context) (int64, error)
}
