package service

import (
	"context"
	"errors"
	"strings"

	"github.com/theabolton/todo-graphql-api/internal/model"
	"github.com/theabolton/todo-graphql-api/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TodoService struct {
	repo repo.TodoRepository
}

func NewTodoService(repo repo.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Add(ctx context.Context, text string) (model.Todo, error) {
	if err := s.validateText(text); err != nil { // Валидация текста на корректность
		return model.Todo{}, err
	}
	return s.repo.Create(ctx, model.Todo{Text: text})
}

func (s *TodoService) Get(ctx context.Context, id int64) (model.Todo, error) {
	return s.repo.Get(ctx, id)
}

func (s *TodoService) List(ctx context.Context, status string) ([]model.Todo, error) {
	// Неизвестный статус трактуем как "any" - список без фильтра
	if status != model.StatusActive && status != model.StatusCompleted {
		status = model.StatusAny
	}
	return s.repo.List(ctx, model.TodoFilter{Status: status})
}

func (s *TodoService) Rename(ctx context.Context, id int64, text string) (model.Todo, error) {
	if err := s.validateText(text); err != nil {
		return model.Todo{}, err
	}
	return s.repo.UpdateText(ctx, id, text)
}

func (s *TodoService) ChangeStatus(ctx context.Context, id int64, complete bool) (model.Todo, error) {
	return s.repo.UpdateComplete(ctx, id, complete)
}

func (s *TodoService) MarkAll(ctx context.Context, complete bool) ([]model.Todo, error) {
	return s.repo.MarkAll(ctx, complete)
}

func (s *TodoService) RemoveCompleted(ctx context.Context) ([]int64, error) {
	return s.repo.DeleteCompleted(ctx)
}

func (s *TodoService) Remove(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) TotalCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

func (s *TodoService) CompletedCount(ctx context.Context) (int64, error) {
	return s.repo.CountCompleted(ctx)
}

func (s *TodoService) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrValidation
	}
	return nil
}
