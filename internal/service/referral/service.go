package referral

import (
	"context"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/rs/zerolog"

	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"
	def "github.com/afrinode-dev/Africlick/internal/service"
)

var _ def.ReferralService = (*serv)(nil)

type serv struct {
	txManager    trm.Manager
	userRepo     repository.UserRepository
	ledgerRepo   repository.LedgerRepository
	referralRepo repository.ReferralRepository
	rules        config.RulesConfig
	log          zerolog.Logger
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	referralRepo repository.ReferralRepository,
	rules config.RulesConfig,
	log zerolog.Logger,
) *serv {
	return &serv{
		txManager:    txManager,
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		referralRepo: referralRepo,
		rules:        rules,
		log:          log,
	}
}

// OnDepositCompleted - начисляет бонус пригласившему после первого
// подтвержденного депозита приглашенного. ClaimBonus гарантирует
// однократность перехода, так что повторные депозиты бонус не дублируют
func (s *serv) OnDepositCompleted(ctx context.Context, refereeID int) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		referrerID, refereeName, ok, err := s.referralRepo.ClaimBonus(txCtx, refereeID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		referrer, err := s.userRepo.GetForUpdate(txCtx, referrerID)
		if err != nil {
			return err
		}

		bonus := s.rules.ReferralBonus()
		if err := s.userRepo.UpdateBalance(txCtx, referrerID, referrer.Points+bonus); err != nil {
			return err
		}

		_, err = s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
			UserID: referrerID,
			Kind:   model.KindReferralBonus,
			Amount: bonus,
			Status: model.StatusCompleted,
			Detail: fmt.Sprintf("Bonus de parrainage : %s", refereeName),
		})
		if err != nil {
			return err
		}

		s.log.Info().
			Int("referrer_id", referrerID).
			Int("referee_id", refereeID).
			Int("bonus", bonus).
			Msg("referral bonus granted")
		return nil
	})
}
