// Package testutil - фейки хранилищ и клиентов для сервисных тестов.
// Базовые фейки однопоточные. Конкурентные сценарии гоняются через
// RowLockTxManager: он имитирует блокировки, которые настоящий расчет
// берет через SELECT ... FOR UPDATE и pg_advisory_xact_lock.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// TxManager - прозрачный trm.Manager без настоящей транзакции
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ trm.Manager = TxManager{}

// RowLockTxManager - trm.Manager с имитацией блокировок строк.
// GetForUpdate через LockingUserRepo берет мьютекс счета, Lock фонда -
// свой мьютекс; все взятые мьютексы держатся до конца Do, как настоящие
// блокировки держатся до коммита или отката
type RowLockTxManager struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

var _ trm.Manager = (*RowLockTxManager)(nil)

func NewRowLockTxManager() *RowLockTxManager {
	return &RowLockTxManager{locks: make(map[int]*sync.Mutex)}
}

type lockSetKey struct{}

// lockSet - мьютексы, взятые внутри одного Do
type lockSet struct {
	held []*sync.Mutex
}

func (m *RowLockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	ls := &lockSet{}
	err := fn(context.WithValue(ctx, lockSetKey{}, ls))
	for i := len(ls.held) - 1; i >= 0; i-- {
		ls.held[i].Unlock()
	}
	return err
}

func (m *RowLockTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (m *RowLockTxManager) rowLock(id int) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// hold - берет мьютекс и регистрирует его на освобождение в конце Do
func (m *RowLockTxManager) hold(ctx context.Context, l *sync.Mutex) error {
	ls, ok := ctx.Value(lockSetKey{}).(*lockSet)
	if !ok {
		return errors.New("lock taken outside transaction")
	}
	l.Lock()
	ls.held = append(ls.held, l)
	return nil
}

// LockingUserRepo - UserRepo, у которого GetForUpdate действительно
// держит строку счета до конца транзакции
type LockingUserRepo struct {
	*UserRepo
	TxManager *RowLockTxManager
}

var _ repository.UserRepository = (*LockingUserRepo)(nil)

func (r *LockingUserRepo) GetForUpdate(ctx context.Context, id int) (*model.User, error) {
	if err := r.TxManager.hold(ctx, r.TxManager.rowLock(id)); err != nil {
		return nil, err
	}
	return r.UserRepo.GetForUpdate(ctx, id)
}

// UserRepo - пользователи в памяти
type UserRepo struct {
	Users  map[int]*model.User
	nextID int
}

var _ repository.UserRepository = (*UserRepo)(nil)

func NewUserRepo(users ...*model.User) *UserRepo {
	r := &UserRepo{Users: make(map[int]*model.User), nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = r.nextID
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.Users[u.ID] = u
	}
	return r
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) (int, error) {
	for _, u := range r.Users {
		if u.Phone == user.Phone {
			return 0, model.ErrDuplicatePhone
		}
	}
	cp := *user
	cp.ID = r.nextID
	r.nextID++
	r.Users[cp.ID] = &cp
	return cp.ID, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, ok := r.Users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	for _, u := range r.Users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *UserRepo) GetByReferralCode(ctx context.Context, code string) (*model.User, error) {
	for _, u := range r.Users {
		if u.ReferralCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *UserRepo) GetForUpdate(ctx context.Context, id int) (*model.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepo) UpdateBalance(ctx context.Context, id int, balance int) error {
	u, ok := r.Users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Points = balance
	return nil
}

func (r *UserRepo) AddTotalDeposited(ctx context.Context, id int, amount int) error {
	u, ok := r.Users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.TotalDeposited += amount
	return nil
}

func (r *UserRepo) UpdateWheelState(ctx context.Context, id int, lastSpin time.Time, attemptsLeft int) error {
	u, ok := r.Users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.LastWheelSpin = &lastSpin
	u.WheelAttemptsLeft = attemptsLeft
	return nil
}

func (r *UserRepo) SetVerified(ctx context.Context, phone string) error {
	for _, u := range r.Users {
		if u.Phone == phone {
			u.Verified = true
			return nil
		}
	}
	return model.ErrUserNotFound
}

// LedgerRepo - леджер в памяти
type LedgerRepo struct {
	Entries []*model.LedgerEntry
	nextID  int
}

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{nextID: 1}
}

func (r *LedgerRepo) Append(ctx context.Context, entry *model.LedgerEntry) (int, error) {
	cp := *entry
	cp.ID = r.nextID
	r.nextID++
	if cp.Status == "" {
		cp.Status = model.StatusCompleted
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.Entries = append(r.Entries, &cp)
	return cp.ID, nil
}

func (r *LedgerRepo) MarkCompleted(ctx context.Context, id int) error {
	return r.transition(id, model.StatusCompleted)
}

func (r *LedgerRepo) MarkFailed(ctx context.Context, id int) error {
	return r.transition(id, model.StatusFailed)
}

func (r *LedgerRepo) transition(id int, to model.LedgerStatus) error {
	for _, e := range r.Entries {
		if e.ID == id {
			if e.Status != model.StatusPending {
				return model.ErrInvalidStateTransition
			}
			e.Status = to
			return nil
		}
	}
	return model.ErrInvalidStateTransition
}

func (r *LedgerRepo) HistoryByUser(ctx context.Context, userID int) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, e := range r.Entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ActiveSum - сумма записей без failed по пользователю, инвариант сохранности
func (r *LedgerRepo) ActiveSum(userID int) int {
	total := 0
	for _, e := range r.Entries {
		if e.UserID == userID && e.Status != model.StatusFailed {
			total += e.Amount
		}
	}
	return total
}

// PoolRepo - фонд (резерв либо заработок) в памяти
type PoolRepo struct {
	Entries []*model.PoolEntry
	nextID  int

	// TxManager включает имитацию advisory-блокировки в Lock
	TxManager *RowLockTxManager
	lockMu    sync.Mutex
}

var (
	_ repository.ReserveRepository  = (*PoolRepo)(nil)
	_ repository.EarningsRepository = (*PoolRepo)(nil)
)

func NewPoolRepo() *PoolRepo {
	return &PoolRepo{nextID: 1}
}

func (r *PoolRepo) Append(ctx context.Context, entry *model.PoolEntry) error {
	cp := *entry
	cp.ID = r.nextID
	r.nextID++
	r.Entries = append(r.Entries, &cp)
	return nil
}

func (r *PoolRepo) Sum(ctx context.Context) (int, error) {
	total := 0
	for _, e := range r.Entries {
		total += e.Amount
	}
	return total, nil
}

// Lock - имитация advisory-блокировки фонда. Без TxManager - no-op
func (r *PoolRepo) Lock(ctx context.Context) error {
	if r.TxManager == nil {
		return nil
	}
	return r.TxManager.hold(ctx, &r.lockMu)
}

// ReferralRepo - привязки рефералов в памяти
type ReferralRepo struct {
	Rows []*model.Referral
}

var _ repository.ReferralRepository = (*ReferralRepo)(nil)

func NewReferralRepo(rows ...*model.Referral) *ReferralRepo {
	return &ReferralRepo{Rows: rows}
}

func (r *ReferralRepo) Create(ctx context.Context, referral *model.Referral) error {
	for _, row := range r.Rows {
		if row.RefereeID == referral.RefereeID {
			return errors.New("referee already linked")
		}
	}
	cp := *referral
	r.Rows = append(r.Rows, &cp)
	return nil
}

func (r *ReferralRepo) ClaimBonus(ctx context.Context, refereeID int) (int, string, bool, error) {
	for _, row := range r.Rows {
		if row.RefereeID == refereeID && !row.BonusGiven {
			row.BonusGiven = true
			return row.ReferrerID, row.RefereeName, true, nil
		}
	}
	return 0, "", false, nil
}

// TaskRepo - задания в памяти
type TaskRepo struct {
	Tasks []*model.Task
}

var _ repository.TaskRepository = (*TaskRepo)(nil)

func NewTaskRepo(tasks ...*model.Task) *TaskRepo {
	return &TaskRepo{Tasks: tasks}
}

func (r *TaskRepo) ListActive(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	for _, t := range r.Tasks {
		if t.Active {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int) (*model.Task, error) {
	for _, t := range r.Tasks {
		if t.ID == id && t.Active {
			cp := *t
			return &cp, nil
		}
	}
	return nil, model.ErrTaskNotFound
}

// WithdrawalRepo - заявки на вывод в памяти
type WithdrawalRepo struct {
	Rows   []*model.Withdrawal
	nextID int
}

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

func NewWithdrawalRepo() *WithdrawalRepo {
	return &WithdrawalRepo{nextID: 1}
}

func (r *WithdrawalRepo) Create(ctx context.Context, w *model.Withdrawal) (int, error) {
	cp := *w
	cp.ID = r.nextID
	r.nextID++
	r.Rows = append(r.Rows, &cp)
	return cp.ID, nil
}

func (r *WithdrawalRepo) SetGatewayRef(ctx context.Context, id int, ref string) error {
	for _, row := range r.Rows {
		if row.ID == id {
			row.GatewayRef = ref
			return nil
		}
	}
	return errors.New("withdrawal not found")
}

// Gateway - платежный шлюз с настраиваемыми отказами
type Gateway struct {
	ChargeErr error
	PayoutErr error

	Charges []float64
	Payouts []float64
}

func (g *Gateway) Charge(ctx context.Context, amount float64, phone, reference string) error {
	if g.ChargeErr != nil {
		return g.ChargeErr
	}
	g.Charges = append(g.Charges, amount)
	return nil
}

func (g *Gateway) Payout(ctx context.Context, amount float64, phone, reference string) error {
	if g.PayoutErr != nil {
		return g.PayoutErr
	}
	g.Payouts = append(g.Payouts, amount)
	return nil
}

// CodeRepo - коды подтверждения в памяти, TTL игнорируется
type CodeRepo struct {
	Codes map[string]string
}

var _ repository.CodeRepository = (*CodeRepo)(nil)

func NewCodeRepo() *CodeRepo {
	return &CodeRepo{Codes: make(map[string]string)}
}

func (r *CodeRepo) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	r.Codes[phone] = code
	return nil
}

func (r *CodeRepo) Get(ctx context.Context, phone string) (string, error) {
	code, ok := r.Codes[phone]
	if !ok {
		return "", model.ErrInvalidCode
	}
	return code, nil
}

func (r *CodeRepo) Delete(ctx context.Context, phone string) error {
	delete(r.Codes, phone)
	return nil
}

// Sender - запоминает отправленные коды вместо реального SMTP
type Sender struct {
	Err  error
	Sent map[string]string
}

func NewSender() *Sender {
	return &Sender{Sent: make(map[string]string)}
}

func (s *Sender) Send(ctx context.Context, destination, code string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent[destination] = code
	return nil
}

// AuthRepo - сессии в памяти
type AuthRepo struct {
	Sessions map[string]*model.Session
	Users    *UserRepo
}

var _ repository.AuthRepository = (*AuthRepo)(nil)

func NewAuthRepo(users *UserRepo) *AuthRepo {
	return &AuthRepo{Sessions: make(map[string]*model.Session), Users: users}
}

func (r *AuthRepo) CreateSession(ctx context.Context, session *model.Session) error {
	cp := *session
	r.Sessions[session.ID] = &cp
	return nil
}

func (r *AuthRepo) GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (string, error) {
	s, ok := r.Sessions[sessionID]
	if !ok {
		return "", errors.New("session not found")
	}
	return s.RefreshToken, nil
}

func (r *AuthRepo) DeleteSession(ctx context.Context, sessionID string) error {
	delete(r.Sessions, sessionID)
	return nil
}

func (r *AuthRepo) GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error) {
	s, ok := r.Sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}
	return r.Users.GetByID(ctx, s.UserID)
}

// Rules - фиксированные бизнес-константы для тестов
type Rules struct {
	MinDep      int
	MinWd       int
	Ratio       float64
	WheelPerDay int
	RefBonus    int
	Edge        float64
	ReservePct  float64
}

func DefaultRules() *Rules {
	return &Rules{
		MinDep:      1000,
		MinWd:       500,
		Ratio:       0.01,
		WheelPerDay: 1,
		RefBonus:    100,
		Edge:        0.05,
		ReservePct:  0.30,
	}
}

func (r *Rules) MinDeposit() int             { return r.MinDep }
func (r *Rules) MinWithdraw() int            { return r.MinWd }
func (r *Rules) PointsToMoneyRatio() float64 { return r.Ratio }
func (r *Rules) WheelAttemptsPerDay() int    { return r.WheelPerDay }
func (r *Rules) ReferralBonus() int          { return r.RefBonus }
func (r *Rules) HouseEdge() float64          { return r.Edge }
func (r *Rules) ReservePercentage() float64  { return r.ReservePct }
