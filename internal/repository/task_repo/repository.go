package task_repo

import (
	"context"
	"errors"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "tasks"
	colID          = "id"
	colTitle       = "title"
	colDescription = "description"
	colPoints      = "points"
	colType        = "type"
	colIcon        = "icon"
	colIsActive    = "is_active"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTaskRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.TaskRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// ListActive - список активных заданий
func (r *repo) ListActive(ctx context.Context) ([]model.Task, error) {
	// Формируем запрос
	query := sq.Select(colID, colTitle, colDescription, colPoints, colType, colIcon, colIsActive).
		From(table).
		Where(sq.Eq{colIsActive: true}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Points, &t.Type, &t.Icon, &t.Active); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetByID - задание по ID
func (r *repo) GetByID(ctx context.Context, id int) (*model.Task, error) {
	// Формируем запрос
	query := sq.Select(colID, colTitle, colDescription, colPoints, colType, colIcon, colIsActive).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var t model.Task
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&t.ID, &t.Title, &t.Description, &t.Points, &t.Type, &t.Icon, &t.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTaskNotFound
		}
		return nil, err
	}

	return &t, nil
}
