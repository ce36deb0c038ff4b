package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"todoapp/internal/models"
)

type fakeTodoRepo struct {
	todos  map[int64]*models.Todo
	nextID int64
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[int64]*models.Todo{}}
}

func (f *fakeTodoRepo) Store(_ context.Context, todo *models.Todo) error {
	f.nextID++
	todo.ID = f.nextID
	cp := *todo
	f.todos[todo.ID] = &cp
	return nil
}

func (f *fakeTodoRepo) FindByID(_ context.Context, accountID, id int64) (*models.Todo, error) {
	t, ok := f.todos[id]
	if !ok || t.AccountID != accountID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTodoRepo) FindAllByAccount(_ context.Context, accountID int64) ([]models.Todo, error) {
	var out []models.Todo
	for _, t := range f.todos {
		if t.AccountID == accountID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTodoRepo) Update(_ context.Context, todo *models.Todo) error {
	if t, ok := f.todos[todo.ID]; ok && t.AccountID == todo.AccountID {
		cp := *todo
		f.todos[todo.ID] = &cp
	}
	return nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, accountID, id int64) (bool, error) {
	if t, ok := f.todos[id]; ok && t.AccountID == accountID {
		delete(f.todos, id)
		return true, nil
	}
	return false, nil
}

func TestTodoCreate(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "  buy milk  ", Description: "2%"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if todo.ID == 0 {
		t.Errorf("ID not assigned")
	}
	if todo.Title != "buy milk" {
		t.Errorf("Title = %q, want trimmed %q", todo.Title, "buy milk")
	}
	if todo.Completed {
		t.Errorf("new todo must start incomplete")
	}
}

func TestTodoCreate_EmptyTitle(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	if _, err := svc.Create(context.Background(), 1, &models.CreateTodoRequest{Title: "   "}); err != ErrTitleRequired {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestTodoOwnershipScoping(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	mine, err := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "mine"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// another account can neither read, update, toggle nor delete it
	if got, _ := svc.GetByID(ctx, 2, mine.ID); got != nil {
		t.Errorf("GetByID leaked another account's todo")
	}
	title := "stolen"
	if got, _ := svc.Update(ctx, 2, mine.ID, &models.UpdateTodoRequest{Title: &title}); got != nil {
		t.Errorf("Update reached another account's todo")
	}
	if got, _ := svc.Toggle(ctx, 2, mine.ID); got != nil {
		t.Errorf("Toggle reached another account's todo")
	}
	if ok, _ := svc.Delete(ctx, 2, mine.ID); ok {
		t.Errorf("Delete removed another account's todo")
	}
	if got, _ := svc.GetByID(ctx, 1, mine.ID); got == nil {
		t.Fatalf("owner lost access to own todo")
	}
}

func TestTodoUpdate_Partial(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "orig", Description: "desc"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	done := true
	updated, err := svc.Update(ctx, 1, todo.ID, &models.UpdateTodoRequest{Completed: &done})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !updated.Completed {
		t.Errorf("Completed not updated")
	}
	if updated.Title != "orig" || updated.Description != "desc" {
		t.Errorf("omitted fields must stay untouched, got %+v", updated)
	}
	if !updated.UpdatedAt.After(todo.UpdatedAt) && !updated.UpdatedAt.Equal(todo.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards")
	}
}

func TestTodoToggle(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "flip me"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	flipped, err := svc.Toggle(ctx, 1, todo.ID)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if !flipped.Completed {
		t.Errorf("first toggle must complete the todo")
	}
	flipped, err = svc.Toggle(ctx, 1, todo.ID)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if flipped.Completed {
		t.Errorf("second toggle must reopen the todo")
	}
}

func TestTodoGetAll_NewestFirst(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	older, _ := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "older"})
	repo.todos[older.ID].CreatedAt = time.Now().Add(-time.Hour)
	if _, err := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "newer"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(ctx, 2, &models.CreateTodoRequest{Title: "other account"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	todos, err := svc.GetAll(ctx, 1)
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("len = %d, want 2", len(todos))
	}
	if todos[0].Title != "newer" || todos[1].Title != "older" {
		t.Errorf("wrong order: %q then %q", todos[0].Title, todos[1].Title)
	}
}

func TestTodoDelete(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, _ := svc.Create(ctx, 1, &models.CreateTodoRequest{Title: "bye"})

	ok, err := svc.Delete(ctx, 1, todo.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = svc.Delete(ctx, 1, todo.ID)
	if err != nil || ok {
		t.Fatalf("second Delete = (%v, %v), want (false, nil)", ok, err)
	}
}
