package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/theabolton/todo-graphql-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

type TodoRepo struct { // Репозиторий для работы непосредственно с БД
	db *gorm.DB
}

func NewTodoRepo(db *gorm.DB) *TodoRepo { // Конструктор
	return &TodoRepo{
		db: db,
	}
}

func (r *TodoRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	// display_order выдается внутри транзакции, чтобы два insert-а не получили один номер
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int64
		if err := tx.Model(&model.Todo{}).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		t.DisplayOrder = int32(maxOrder) + 1
		return tx.Create(&t).Error
	})
	return t, err
}

func (r *TodoRepo) Get(ctx context.Context, id int64) (model.Todo, error) {
	var t model.Todo
	err := r.db.WithContext(ctx).First(&t, id).Error
	return t, r.mapError(err)
}

func (r *TodoRepo) List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Order("display_order, id")

	switch filter.Status {
	case model.StatusActive:
		q = q.Where("complete = ?", false)
	case model.StatusCompleted:
		q = q.Where("complete = ?", true)
	}

	todos := make([]model.Todo, 0)
	err := q.Find(&todos).Error
	return todos, err
}

func (r *TodoRepo) UpdateText(ctx context.Context, id int64, text string) (model.Todo, error) {
	return r.updateColumn(ctx, id, "text", text)
}

func (r *TodoRepo) UpdateComplete(ctx context.Context, id int64, complete bool) (model.Todo, error) {
	return r.updateColumn(ctx, id, "complete", complete)
}

// updateColumn меняет одно поле и перечитывает строку в той же транзакции
func (r *TodoRepo) updateColumn(ctx context.Context, id int64, column string, value interface{}) (model.Todo, error) {
	var t model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Todo{}).Where("id = ?", id).Update(column, value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrorNotFound
		}
		return tx.First(&t, id).Error
	})
	return t, r.mapError(err)
}

func (r *TodoRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrorNotFound
	}
	return nil
}

// MarkAll выставляет complete всем задачам и возвращает только реально измененные
func (r *TodoRepo) MarkAll(ctx context.Context, complete bool) ([]model.Todo, error) {
	changed := make([]model.Todo, 0)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complete = ?", !complete).
			Order("display_order, id").
			Find(&changed).Error; err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}

		ids := make([]int64, len(changed))
		for i := range changed {
			ids[i] = changed[i].ID
			changed[i].Complete = complete
		}
		return tx.Model(&model.Todo{}).
			Where("id IN ?", ids).
			Update("complete", complete).Error
	})

	return changed, err
}

func (r *TodoRepo) DeleteCompleted(ctx context.Context) ([]int64, error) {
	deleted := make([]int64, 0)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var completed []model.Todo
		if err := tx.Where("complete = ?", true).
			Order("display_order, id").
			Find(&completed).Error; err != nil {
			return err
		}
		if len(completed) == 0 {
			return nil
		}

		for _, t := range completed {
			deleted = append(deleted, t.ID)
		}
		return tx.Where("id IN ?", deleted).Delete(&model.Todo{}).Error
	})

	return deleted, err
}

func (r *TodoRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Todo{}).Count(&n).Error
	return n, err
}

func (r *TodoRepo) CountCompleted(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("complete = ?", true).
		Count(&n).Error
	return n, err
}

func (r *TodoRepo) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorNotFound
	}
	return err
}
