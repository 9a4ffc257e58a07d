package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID                int
	Username          string
	Phone             string
	Password          string
	Verified          bool
	Points            int
	TotalDeposited    int
	LastWheelSpin     *time.Time
	WheelAttemptsLeft int
	ReferralCode      string
	IsAdmin           bool
	CreatedAt         time.Time
}

type UserClaims struct {
	jwt.RegisteredClaims
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
