package converter

import (
	"github.com/afrinode-dev/Africlick/internal/api/dto/auth"
	"github.com/afrinode-dev/Africlick/internal/model"
)

func RegisterRequestToUserModel(req *auth.RegisterRequest) *model.User {
	return &model.User{
		Username: req.Username,
		Phone:    req.Phone,
		Password: req.Password,
	}
}

func ToRegisterResponse(user *model.User) auth.RegisterResponse {
	return auth.RegisterResponse{
		ID:           user.ID,
		Username:     user.Username,
		Phone:        user.Phone,
		ReferralCode: user.ReferralCode,
	}
}

func ToUserSummary(user *model.User) auth.UserSummary {
	return auth.UserSummary{
		ID:           user.ID,
		Username:     user.Username,
		Phone:        user.Phone,
		Points:       user.Points,
		ReferralCode: user.ReferralCode,
		IsAdmin:      user.IsAdmin,
	}
}
