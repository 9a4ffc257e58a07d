package settlement

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/metrics"
	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Coordinator - атомарный юнит расчета по одному счету.
// Открывает транзакцию, блокирует строку пользователя и передает ее
// актуальное состояние в fn. Все мутации внутри fn (баланс, леджер, фонды)
// коммитятся или откатываются как одно целое.
//
// Проверка баланса и списание всегда происходят под одной блокировкой,
// чтение-снаружи-запись-внутри исключено.
type Coordinator struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
}

func NewCoordinator(txManager trm.Manager, userRepo repository.UserRepository) *Coordinator {
	return &Coordinator{
		txManager: txManager,
		userRepo:  userRepo,
	}
}

// Settle - выполняет fn внутри транзакции с заблокированной строкой счета.
// Ошибка fn откатывает все изменения и возвращается вызывающему как есть
func (c *Coordinator) Settle(ctx context.Context, userID int, fn func(txCtx context.Context, user *model.User) error) error {
	err := c.txManager.Do(ctx, func(txCtx context.Context) error {
		user, err := c.userRepo.GetForUpdate(txCtx, userID)
		if err != nil {
			return err
		}
		return fn(txCtx, user)
	})
	if err != nil {
		// Отказы бизнес-правил - ожидаемые исходы, метрику откатов
		// двигают только неожиданные ошибки
		if !model.IsBusinessRejection(err) {
			metrics.SettlementRollbacks.Inc()
		}
		return err
	}

	metrics.SettlementCommits.Inc()
	return nil
}
