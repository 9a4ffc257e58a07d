package user_repo

import (
	"context"
	"errors"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "users"
	colID             = "id"
	colUsername       = "username"
	colPhone          = "phone"
	colPasswordHash   = "password_hash"
	colVerified       = "verified"
	colPoints         = "points"
	colTotalDeposited = "total_deposited"
	colLastWheelSpin  = "last_wheel_spin"
	colAttemptsLeft   = "wheel_attempts_left"
	colReferralCode   = "referral_code"
	colIsAdmin        = "is_admin"
	colCreatedAt      = "created_at"

	uniqueViolationCode = "23505"
)

var allColumns = []string{
	colID, colUsername, colPhone, colPasswordHash, colVerified, colPoints,
	colTotalDeposited, colLastWheelSpin, colAttemptsLeft, colReferralCode,
	colIsAdmin, colCreatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// Create - создает нового пользователя в БД.
// Возвращает ID созданного пользователя
func (r *repo) Create(ctx context.Context, user *model.User) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUsername, colPhone, colPasswordHash, colVerified, colPoints,
			colTotalDeposited, colAttemptsLeft, colReferralCode, colIsAdmin).
		Values(user.Username, user.Phone, user.Password, user.Verified, int64(user.Points),
			int64(user.TotalDeposited), user.WheelAttemptsLeft, user.ReferralCode, user.IsAdmin).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, model.ErrDuplicatePhone
		}
		return 0, err
	}

	return id, nil
}

func (r *repo) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colID: id}, false)
}

func (r *repo) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colPhone: phone}, false)
}

func (r *repo) GetByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colReferralCode: code}, false)
}

// GetForUpdate - читает строку пользователя с блокировкой FOR UPDATE.
// Конкурирующие расчеты по одному счету ждут на этой строке до коммита
func (r *repo) GetForUpdate(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colID: id}, true)
}

func (r *repo) getOne(ctx context.Context, where sq.Eq, forUpdate bool) (*model.User, error) {
	// Формируем запрос
	query := sq.Select(allColumns...).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		user     model.User
		points   int64
		total    int64
		lastSpin *time.Time
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&user.ID, &user.Username, &user.Phone, &user.Password, &user.Verified, &points,
		&total, &lastSpin, &user.WheelAttemptsLeft, &user.ReferralCode,
		&user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	user.Points = int(points)
	user.TotalDeposited = int(total)
	user.LastWheelSpin = lastSpin
	return &user, nil
}

// UpdateBalance - записывает новый баланс пользователя.
// Вызывается только под блокировкой строки внутри расчета
func (r *repo) UpdateBalance(ctx context.Context, id int, balance int) error {
	if balance < 0 {
		return model.ErrInsufficientFunds
	}

	// Формируем запрос
	query := sq.Update(table).
		Set(colPoints, int64(balance)).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, query)
}

func (r *repo) AddTotalDeposited(ctx context.Context, id int, amount int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colTotalDeposited, sq.Expr(colTotalDeposited+" + ?", int64(amount))).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, query)
}

func (r *repo) UpdateWheelState(ctx context.Context, id int, lastSpin time.Time, attemptsLeft int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colLastWheelSpin, lastSpin).
		Set(colAttemptsLeft, attemptsLeft).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, query)
}

func (r *repo) SetVerified(ctx context.Context, phone string) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colVerified, true).
		Where(sq.Eq{colPhone: phone}).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, query)
}

func (r *repo) exec(ctx context.Context, query sq.UpdateBuilder) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
