package gql

import (
	"context"
	"errors"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/theabolton/todo-graphql-api/internal/model"
	"github.com/theabolton/todo-graphql-api/internal/repo"
	"github.com/theabolton/todo-graphql-api/internal/service"
)

const (
	todoKind = "Todo"
	userKind = "User"

	// Демо однопользовательское, viewer всегда один и тот же
	viewerID int64 = 1
)

type Resolver struct {
	svc *service.TodoService
}

func NewResolver(svc *service.TodoService) *Resolver {
	return &Resolver{svc: svc}
}

func NewSchema(svc *service.TodoService) *graphql.Schema {
	return graphql.MustParseSchema(Schema, NewResolver(svc))
}

// ===== Query =====

func (r *Resolver) Viewer() *userResolver {
	return &userResolver{svc: r.svc}
}

func (r *Resolver) Node(ctx context.Context, args struct{ ID graphql.ID }) (*nodeResolver, error) {
	kind, id, err := fromGlobalID(args.ID)
	if err != nil {
		return nil, nil // кривой id - это просто "узла нет", не ошибка
	}

	switch kind {
	case userKind:
		if id == viewerID {
			return &nodeResolver{&userResolver{svc: r.svc}}, nil
		}
	case todoKind:
		t, err := r.svc.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrorNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &nodeResolver{&todoResolver{todo: t}}, nil
	}
	return nil, nil
}

// ===== Node =====

type node interface {
	ID() graphql.ID
}

type nodeResolver struct {
	node
}

func (r *nodeResolver) ToTodo() (*todoResolver, bool) {
	t, ok := r.node.(*todoResolver)
	return t, ok
}

func (r *nodeResolver) ToUser() (*userResolver, bool) {
	u, ok := r.node.(*userResolver)
	return u, ok
}

// ===== Todo =====

type todoResolver struct {
	todo model.Todo
}

func (r *todoResolver) ID() graphql.ID {
	return toGlobalID(todoKind, r.todo.ID)
}

func (r *todoResolver) Text() string {
	return r.todo.Text
}

func (r *todoResolver) Complete() bool {
	return r.todo.Complete
}

func (r *todoResolver) DisplayOrder() int32 {
	return r.todo.DisplayOrder
}

// ===== User (viewer) =====

type userResolver struct {
	svc *service.TodoService
}

func (r *userResolver) ID() graphql.ID {
	return toGlobalID(userKind, viewerID)
}

func (r *userResolver) Todos(ctx context.Context, args connectionArgs) (*todoConnectionResolver, error) {
	todos, err := r.svc.List(ctx, args.Status)
	if err != nil {
		return nil, err
	}
	return newTodoConnection(todos, args)
}

func (r *userResolver) TotalCount(ctx context.Context) (int32, error) {
	n, err := r.svc.TotalCount(ctx)
	return int32(n), err
}

func (r *userResolver) CompletedCount(ctx context.Context) (int32, error) {
	n, err := r.svc.CompletedCount(ctx)
	return int32(n), err
}

// ===== TodoConnection =====

type todoConnectionResolver struct {
	todos            []model.Todo
	start, end       int
	hasPrev, hasNext bool
}

func newTodoConnection(todos []model.Todo, args connectionArgs) (*todoConnectionResolver, error) {
	start, end, hasPrev, hasNext, err := sliceWindow(len(todos), args)
	if err != nil {
		return nil, err
	}
	return &todoConnectionResolver{
		todos:   todos,
		start:   start,
		end:     end,
		hasPrev: hasPrev,
		hasNext: hasNext,
	}, nil
}

func (r *todoConnectionResolver) Edges() []*todoEdgeResolver {
	edges := make([]*todoEdgeResolver, 0, r.end-r.start)
	for i := r.start; i < r.end; i++ {
		edges = append(edges, &todoEdgeResolver{todo: r.todos[i], offset: i})
	}
	return edges
}

func (r *todoConnectionResolver) PageInfo() *pageInfoResolver {
	pi := &pageInfoResolver{hasNext: r.hasNext, hasPrev: r.hasPrev}
	if r.end > r.start {
		start := offsetCursor(r.start)
		end := offsetCursor(r.end - 1)
		pi.start, pi.end = &start, &end
	}
	return pi
}

type todoEdgeResolver struct {
	todo   model.Todo
	offset int
}

func (r *todoEdgeResolver) Node() *todoResolver {
	return &todoResolver{todo: r.todo}
}

func (r *todoEdgeResolver) Cursor() string {
	return offsetCursor(r.offset)
}

type pageInfoResolver struct {
	hasNext, hasPrev bool
	start, end       *string
}

func (r *pageInfoResolver) HasNextPage() bool {
	return r.hasNext
}

func (r *pageInfoResolver) HasPreviousPage() bool {
	return r.hasPrev
}

func (r *pageInfoResolver) StartCursor() *string {
	return r.start
}

func (r *pageInfoResolver) EndCursor() *string {
	return r.end
}

// ===== Mutations =====

func decodeTodoID(gid graphql.ID) (int64, error) {
	kind, id, err := fromGlobalID(gid)
	if err != nil || kind != todoKind {
		return 0, fmt.Errorf("invalid todo id %q", gid)
	}
	return id, nil
}

type addTodoInput struct {
	Text             string
	ClientMutationID *string
}

func (r *Resolver) AddTodo(ctx context.Context, args struct{ Input addTodoInput }) (*addTodoPayloadResolver, error) {
	t, err := r.svc.Add(ctx, args.Input.Text)
	if err != nil {
		return nil, err
	}

	// Курсор нового edge - это его позиция в конце списка
	total, err := r.svc.TotalCount(ctx)
	if err != nil {
		return nil, err
	}

	return &addTodoPayloadResolver{
		svc:  r.svc,
		edge: &todoEdgeResolver{todo: t, offset: int(total) - 1},
		cmid: args.Input.ClientMutationID,
	}, nil
}

type addTodoPayloadResolver struct {
	svc  *service.TodoService
	edge *todoEdgeResolver
	cmid *string
}

func (r *addTodoPayloadResolver) TodoEdge() *todoEdgeResolver {
	return r.edge
}

func (r *addTodoPayloadResolver) Viewer() *userResolver {
	return &userResolver{svc: r.svc}
}

func (r *addTodoPayloadResolver) ClientMutationID() *string {
	return r.cmid
}

type changeTodoStatusInput struct {
	ID               graphql.ID
	Complete         bool
	ClientMutationID *string
}

func (r *Resolver) ChangeTodoStatus(ctx context.Context, args struct{ Input changeTodoStatusInput }) (*changeTodoStatusPayloadResolver, error) {
	id, err := decodeTodoID(args.Input.ID)
	if err != nil {
		return nil, err
	}

	t, err := r.svc.ChangeStatus(ctx, id, args.Input.Complete)
	if err != nil {
		return nil, err
	}

	return &changeTodoStatusPayloadResolver{
		svc:  r.svc,
		todo: t,
		cmid: args.Input.ClientMutationID,
	}, nil
}

type changeTodoStatusPayloadResolver struct {
	svc  *service.TodoService
	todo model.Todo
	cmid *string
}

func (r *changeTodoStatusPayloadResolver) Todo() *todoResolver {
	return &todoResolver{todo: r.todo}
}

func (r *changeTodoStatusPayloadResolver) Viewer() *userResolver {
	return &userResolver{svc: r.svc}
}

func (r *changeTodoStatusPayloadResolver) ClientMutationID() *string {
	return r.cmid
}

type markAllTodosInput struct {
	Complete         bool
	ClientMutationID *string
}

func (r *Resolver) MarkAllTodos(ctx context.Context, args struct{ Input markAllTodosInput }) (*markAllTodosPayloadResolver, error) {
	changed, err := r.svc.MarkAll(ctx, args.Input.Complete)
	if err != nil {
		return nil, err
	}

	return &markAllTodosPayloadResolver{
		svc:     r.svc,
		changed: changed,
		cmid:    args.Input.ClientMutationID,
	}, nil
}

type markAllTodosPayloadResolver struct {
	svc     *service.TodoService
	changed []model.Todo
	cmid    *string
}

func (r *markAllTodosPayloadResolver) ChangedTodos() []*todoResolver {
	todos := make([]*todoResolver, 0, len(r.changed))
	for _, t := range r.changed {
		todos = append(todos, &todoResolver{todo: t})
	}
	return todos
}

func (r *markAllTodosPayloadResolver) Viewer() *userResolver {
	return &userResolver{svc: r.svc}
}

func (r *markAllTodosPayloadResolver) ClientMutationID() *string {
	return r.cmid
}

type removeCompletedTodosInput struct {
	ClientMutationID *string
}

func (r *Resolver) RemoveCompletedTodos(ctx context.Context, args struct{ Input removeCompletedTodosInput }) (*removeCompletedTodosPayloadResolver, error) {
	deleted, err := r.svc.RemoveCompleted(ctx)
	if err != nil {
		return nil, err
	}

	return &removeCompletedTodosPayloadResolver{
		svc:     r.svc,
		deleted: deleted,
		cmid:    args.Input.ClientMutationID,
	}, nil
}

type removeCompletedTodosPayloadResolver struct {
	svc     *service.TodoService
	deleted []int64
	cmid    *string
}

func (r *removeCompletedTodosPayloadResolver) DeletedTodoIDs() []graphql.ID {
	ids := make([]graphql.ID, 0, len(r.deleted))
	for _, id := range r.deleted {
		ids = append(ids, toGlobalID(todoKind, id))
	}
	return ids
}

func (r *removeCompletedTodosPayloadResolver) Viewer() *userResolver {
	return &userResolver{svc: r.svc}
}

func (r *removeCompletedTodosPayloadResolver) ClientMutationID() *string {
	return r.cmid
}

type removeTodoInput struct {
	ID               graphql.ID
	ClientMutationID *string
}

func (r *Resolver) RemoveTodo(ctx context.Context, args struct{ Input removeTodoInput }) (*removeTodoPayloadResolver, error) {
	id, err := decodeTodoID(args.Input.ID)
	if err != nil {
		return nil, err
	}

	if err := r.svc.Remove(ctx, id); err != nil {
		return nil, err
	}

	return &removeTodoPayloadResolver{
		svc:  r.svc,
		gid:  args.Input.ID,
		cmid: args.Input.ClientMutationID,
	}, nil
}

type removeTodoPayloadResolver struct {
	svc  *service.TodoService
	gid  graphql.ID
	cmid *string
}

func (r *removeTodoPayloadResolver) DeletedTodoID() graphql.ID {
	return r.gid
}

func (r *removeTodoPayloadResolver) Viewer() *userResolver {
	return &userResolver{svc: r.svc}
}

func (r *removeTodoPayloadResolver) ClientMutationID() *string {
	return r.cmid
}

type renameTodoInput struct {
	ID               graphql.ID
	Text             string
	ClientMutationID *string
}

func (r *Resolver) RenameTodo(ctx context.Context, args struct{ Input renameTodoInput }) (*renameTodoPayloadResolver, error) {
	id, err := decodeTodoID(args.Input.ID)
	if err != nil {
		return nil, err
	}

	t, err := r.svc.Rename(ctx, id, args.Input.Text)
	if err != nil {
		return nil, err
	}

	return &renameTodoPayloadResolver{
		todo: t,
		cmid: args.Input.ClientMutationID,
	}, nil
}

type renameTodoPayloadResolver struct {
	todo model.Todo
	cmid *string
}

func (r *renameTodoPayloadResolver) Todo() *todoResolver {
	return &todoResolver{todo: r.todo}
}

func (r *renameTodoPayloadResolver) ClientMutationID() *string {
	return r.cmid
}
