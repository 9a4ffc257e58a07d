package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/afrinode-dev/Africlick/internal/model"
)

// VerifyAccount - сверяет код подтверждения и помечает аккаунт подтвержденным
func (s *serv) VerifyAccount(ctx context.Context, phone, code string) (*model.User, error) {
	stored, err := s.codeRepo.Get(ctx, phone)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, model.ErrInvalidCode
	}

	if err := s.userRepo.SetVerified(ctx, phone); err != nil {
		return nil, err
	}

	// Использованный код удаляем сразу, не дожидаясь TTL
	if err := s.codeRepo.Delete(ctx, phone); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete used verification code")
	}

	return s.userRepo.GetByPhone(ctx, phone)
}

// ResendCode - повторная отправка кода для неподтвержденного аккаунта
func (s *serv) ResendCode(ctx context.Context, phone string) error {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.ErrUserNotFound
		}
		return err
	}
	if user.Verified {
		return model.ErrInvalidCode
	}

	code := generateVerificationCode()
	if err := s.sender.Send(ctx, phone, code); err != nil {
		return err
	}

	return s.codeRepo.Save(ctx, phone, code, codeTTL)
}
