package repositories

import (
	"context"
	"database/sql"

	"todoapp/internal/models"
)

type TodoRepository interface {
	Store(ctx context.Context, todo *models.Todo) error
	FindByID(ctx context.Context, accountID, id int64) (*models.Todo, error)
	FindAllByAccount(ctx context.Context, accountID int64) ([]models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, accountID, id int64) (bool, error)
}

type todoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Store(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (account_id, title, description, completed, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		todo.AccountID, todo.Title, todo.Description, todo.Completed,
		todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
}

func (r *todoRepository) FindByID(ctx context.Context, accountID, id int64) (*models.Todo, error) {
	query := `SELECT id, account_id, title, description, completed, created_at, updated_at
	       FROM todos WHERE id = $1 AND account_id = $2`
	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).Scan(
		&todo.ID, &todo.AccountID, &todo.Title, &todo.Description,
		&todo.Completed, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) FindAllByAccount(ctx context.Context, accountID int64) ([]models.Todo, error) {
	query := `SELECT id, account_id, title, description, completed, created_at, updated_at
	       FROM todos WHERE account_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(
			&t.ID, &t.AccountID, &t.Title, &t.Description,
			&t.Completed, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todoRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `
		UPDATE todos SET title=$1, description=$2, completed=$3, updated_at=$4
		WHERE id=$5 AND account_id=$6`
	_, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.UpdatedAt,
		todo.ID, todo.AccountID,
	)
	return err
}

func (r *todoRepository) Delete(ctx context.Context, accountID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
