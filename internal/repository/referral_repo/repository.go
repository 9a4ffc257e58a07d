package referral_repo

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
	table          = "referrals"
	colID          = "id"
	colReferrerID  = "referrer_id"
	colRefereeID   = "referee_id"
	colRefereeName = "referee_name"
	colBonusGiven  = "bonus_given"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewReferralRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.ReferralRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// Create - фиксирует связь реферер-реферал при регистрации
func (r *repo) Create(ctx context.Context, referral *model.Referral) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colReferrerID, colRefereeID, colRefereeName, colBonusGiven).
		Values(referral.ReferrerID, referral.RefereeID, referral.RefereeName, referral.BonusGiven).
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

// ClaimBonus - атомарно переводит bonus_given false -> true.
// Один UPDATE закрывает гонку двух одновременных депозитов реферала:
// бонус забирает ровно один из них
func (r *repo) ClaimBonus(ctx context.Context, refereeID int) (int, string, bool, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBonusGiven, true).
		Where(sq.Eq{colRefereeID: refereeID, colBonusGiven: false}).
		Suffix("RETURNING " + colReferrerID + ", " + colRefereeName).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, "", false, err
	}

	var (
		referrerID  int
		refereeName string
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&referrerID, &refereeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", false, nil
		}
		return 0, "", false, err
	}

	return referrerID, refereeName, true, nil
}
