package ledger_repo

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "transactions"
	colID        = "id"
	colUserID    = "user_id"
	colKind      = "kind"
	colAmount    = "amount"
	colStatus    = "status"
	colDetail    = "detail"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLedgerRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.LedgerRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// Append - вставляет неизменяемую запись леджера.
// Возвращает ID созданной записи
func (r *repo) Append(ctx context.Context, entry *model.LedgerEntry) (int, error) {
	status := entry.Status
	if status == "" {
		status = model.StatusCompleted
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colKind, colAmount, colStatus, colDetail).
		Values(entry.UserID, string(entry.Kind), int64(entry.Amount), string(status), entry.Detail).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// MarkCompleted - переводит запись pending -> completed.
// Повторный перевод невозможен: затронуто 0 строк - ErrInvalidStateTransition
func (r *repo) MarkCompleted(ctx context.Context, id int) error {
	return r.transition(ctx, id, model.StatusCompleted)
}

// MarkFailed - переводит запись pending -> failed
func (r *repo) MarkFailed(ctx context.Context, id int) error {
	return r.transition(ctx, id, model.StatusFailed)
}

func (r *repo) transition(ctx context.Context, id int, to model.LedgerStatus) error {
	// Формируем запрос. Условие по status закрывает двойной перевод
	query := sq.Update(table).
		Set(colStatus, string(to)).
		Where(sq.Eq{colID: id, colStatus: string(model.StatusPending)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrInvalidStateTransition
	}

	return nil
}

// HistoryByUser - вся история пользователя по леджеру, новые записи первыми
func (r *repo) HistoryByUser(ctx context.Context, userID int) ([]model.LedgerEntry, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colKind, colAmount, colStatus, colDetail, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt + " DESC, " + colID + " DESC").
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

	var entries []model.LedgerEntry
	for rows.Next() {
		var (
			e      model.LedgerEntry
			kind   string
			status string
			amount int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &kind, &amount, &status, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = model.LedgerKind(kind)
		e.Status = model.LedgerStatus(status)
		e.Amount = int(amount)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
