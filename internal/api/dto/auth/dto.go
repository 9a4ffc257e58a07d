package auth

type RegisterRequest struct {
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code"` // Код пригласившего, опционален
}

type RegisterResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code"`
}

type VerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type ResendCodeRequest struct {
	Phone string `json:"phone"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

type UserSummary struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	Points       int    `json:"points"`
	ReferralCode string `json:"referral_code"`
	IsAdmin      bool   `json:"is_admin"`
}
