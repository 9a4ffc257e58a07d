package auth

import (
	"context"
	"errors"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/pkg/pass"
)

const codeTTL = 10 * time.Minute

// Register - создает пользователя с нулевым балансом и отправляет код
// подтверждения. Сессия не открывается, пока аккаунт не подтвержден.
// referralCode - необязательный код пригласившего
func (s *serv) Register(ctx context.Context, user *model.User, referralCode string) (*model.User, error) {
	// Проверяем, не занят ли номер. Гонку закрывает уникальный индекс
	_, err := s.userRepo.GetByPhone(ctx, user.Phone)
	if err == nil {
		return nil, model.ErrDuplicatePhone
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	// Код подтверждения уходит до создания аккаунта: если доставка
	// не работает, пользователя не создаем
	code := generateVerificationCode()
	if err := s.sender.Send(ctx, user.Phone, code); err != nil {
		return nil, err
	}

	user.Points = 0
	user.Verified = false
	user.WheelAttemptsLeft = s.rules.WheelAttemptsPerDay()
	user.ReferralCode = generateReferralCode()

	// Начало транзакциии
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Создать пользователя в бд
		user.ID, err = s.userRepo.Create(txCtx, user)
		if err != nil {
			return err
		}

		// 2. Привязать реферера, если код передан и существует.
		// Невалидный код не валит регистрацию
		if referralCode != "" {
			referrer, err := s.userRepo.GetByReferralCode(txCtx, referralCode)
			if err != nil {
				if !errors.Is(err, model.ErrUserNotFound) {
					return err
				}
				s.log.Warn().Str("code", referralCode).Msg("unknown referral code, skipping")
				return nil
			}
			if referrer.ID == user.ID {
				return nil
			}

			return s.referralRepo.Create(txCtx, &model.Referral{
				ReferrerID:  referrer.ID,
				RefereeID:   user.ID,
				RefereeName: user.Username,
				BonusGiven:  false,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Код живет 10 минут
	if err := s.codeRepo.Save(ctx, user.Phone, code, codeTTL); err != nil {
		return nil, err
	}

	return user, nil
}
