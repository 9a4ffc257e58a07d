package pool_repo

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	reserveTable  = "reserve_entries"
	earningsTable = "earnings_entries"

	colID        = "id"
	colAmount    = "amount"
	colSource    = "source"
	colUserID    = "user_id"
	colGameID    = "game_id"
	colCreatedAt = "created_at"

	// Ключи advisory-блокировок фондов
	reserveLockKey  = int64(1001)
	earningsLockKey = int64(1002)
)

// Оба фонда (резерв и заработок) живут в таблицах одинаковой формы,
// поэтому реализация общая, различается только таблица.
type repo struct {
	table   string
	lockKey int64
	dbc     *pgxpool.Pool
	getter  *trmpgx.CtxGetter
}

func NewReserveRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.ReserveRepository {
	return &repo{table: reserveTable, lockKey: reserveLockKey, dbc: dbc, getter: getter}
}

func NewEarningsRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.EarningsRepository {
	return &repo{table: earningsTable, lockKey: earningsLockKey, dbc: dbc, getter: getter}
}

// Append - добавляет запись в фонд
func (r *repo) Append(ctx context.Context, entry *model.PoolEntry) error {
	// Формируем запрос
	query := sq.Insert(r.table).
		Columns(colAmount, colSource, colUserID, colGameID).
		Values(int64(entry.Amount), string(entry.Source), entry.UserID, entry.GameID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// Sum - сумма всех записей фонда
func (r *repo) Sum(ctx context.Context) (int, error) {
	// Формируем запрос
	query := sq.Select("COALESCE(SUM(" + colAmount + "), 0)").
		From(r.table)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var sum int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&sum)
	if err != nil {
		return 0, err
	}

	return int(sum), nil
}

// Lock - advisory-блокировка фонда. Снимается на коммите или откате
func (r *repo) Lock(ctx context.Context) error {
	_, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, "SELECT pg_advisory_xact_lock($1)", r.lockKey)
	return err
}
