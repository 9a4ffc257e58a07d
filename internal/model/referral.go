package model

type Referral struct {
	ID          int
	ReferrerID  int
	RefereeID   int
	RefereeName string
	BonusGiven  bool
}
