package withdrawal_repo

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "withdrawals"
	colID            = "id"
	colUserID        = "user_id"
	colTransactionID = "transaction_id"
	colAmount        = "amount"
	colMoneyAmount   = "money_amount"
	colPhone         = "phone"
	colMethod        = "method"
	colGatewayRef    = "gateway_ref"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewWithdrawalRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.WithdrawalRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// Create - создает заявку на вывод, привязанную к записи леджера.
// Возвращает ID заявки
func (r *repo) Create(ctx context.Context, w *model.Withdrawal) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colTransactionID, colAmount, colMoneyAmount, colPhone, colMethod).
		Values(w.UserID, w.TransactionID, int64(w.Amount), w.MoneyAmount, w.Phone, w.Method).
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

// SetGatewayRef - сохраняет референс платежного шлюза после подтверждения
func (r *repo) SetGatewayRef(ctx context.Context, id int, ref string) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colGatewayRef, ref).
		Where(sq.Eq{colID: id}).
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
