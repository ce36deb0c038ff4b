package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repositories"
)

var ErrTitleRequired = errors.New("title is required")

// TodoService defines the interface for todo-related business logic. Every
// operation is scoped to the owning account.
type TodoService interface {
	Create(ctx context.Context, accountID int64, req *models.CreateTodoRequest) (*models.Todo, error)
	GetByID(ctx context.Context, accountID, id int64) (*models.Todo, error)
	GetAll(ctx context.Context, accountID int64) ([]models.Todo, error)
	Update(ctx context.Context, accountID, id int64, req *models.UpdateTodoRequest) (*models.Todo, error)
	Toggle(ctx context.Context, accountID, id int64) (*models.Todo, error)
	Delete(ctx context.Context, accountID, id int64) (bool, error)
}

type todoService struct {
	repo repositories.TodoRepository
}

func NewTodoService(repo repositories.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) Create(ctx context.Context, accountID int64, req *models.CreateTodoRequest) (*models.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	now := time.Now()
	todo := &models.Todo{
		AccountID:   accountID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Store(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) GetByID(ctx context.Context, accountID, id int64) (*models.Todo, error) {
	return s.repo.FindByID(ctx, accountID, id)
}

func (s *todoService) GetAll(ctx context.Context, accountID int64) ([]models.Todo, error) {
	return s.repo.FindAllByAccount(ctx, accountID)
}

func (s *todoService) Update(ctx context.Context, accountID, id int64, req *models.UpdateTodoRequest) (*models.Todo, error) {
	existing, err := s.repo.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if req.Title != nil {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		existing.Description = strings.TrimSpace(*req.Description)
	}
	if req.Completed != nil {
		existing.Completed = *req.Completed
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *todoService) Toggle(ctx context.Context, accountID, id int64) (*models.Todo, error) {
	existing, err := s.repo.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.Completed = !existing.Completed
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *todoService) Delete(ctx context.Context, accountID, id int64) (bool, error) {
	return s.repo.Delete(ctx, accountID, id)
}
