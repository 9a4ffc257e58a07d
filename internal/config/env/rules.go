package env

import (
	"fmt"
	"os"

	"github.com/afrinode-dev/Africlick/internal/config"

	"gopkg.in/yaml.v3"
)

type rulesYAML struct {
	Rules struct {
		MinDeposit          int     `yaml:"min_deposit"`
		MinWithdraw         int     `yaml:"min_withdraw"`
		PointsToMoneyRatio  float64 `yaml:"points_to_money_ratio"`
		WheelAttemptsPerDay int     `yaml:"wheel_attempts_per_day"`
		ReferralBonus       int     `yaml:"referral_bonus"`
		HouseEdge           float64 `yaml:"house_edge"`
		ReservePercentage   float64 `yaml:"reserve_percentage"`
	} `yaml:"rules"`
}

type rulesConfig struct {
	minDeposit          int
	minWithdraw         int
	pointsToMoneyRatio  float64
	wheelAttemptsPerDay int
	referralBonus       int
	houseEdge           float64
	reservePercentage   float64
}

// NewRulesConfigFromYAML - читает бизнес-константы из YAML файла.
func NewRulesConfigFromYAML(path string) (config.RulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules config: %w", err)
	}

	var raw rulesYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rules config: %w", err)
	}

	r := raw.Rules
	if r.PointsToMoneyRatio <= 0 {
		return nil, fmt.Errorf("points_to_money_ratio must be positive")
	}
	if r.HouseEdge < 0 || r.ReservePercentage < 0 || r.HouseEdge+r.ReservePercentage > 1 {
		return nil, fmt.Errorf("invalid house_edge/reserve_percentage split")
	}

	return &rulesConfig{
		minDeposit:          r.MinDeposit,
		minWithdraw:         r.MinWithdraw,
		pointsToMoneyRatio:  r.PointsToMoneyRatio,
		wheelAttemptsPerDay: r.WheelAttemptsPerDay,
		referralBonus:       r.ReferralBonus,
		houseEdge:           r.HouseEdge,
		reservePercentage:   r.ReservePercentage,
	}, nil
}

func (c *rulesConfig) MinDeposit() int             { return c.minDeposit }
func (c *rulesConfig) MinWithdraw() int            { return c.minWithdraw }
func (c *rulesConfig) PointsToMoneyRatio() float64 { return c.pointsToMoneyRatio }
func (c *rulesConfig) WheelAttemptsPerDay() int    { return c.wheelAttemptsPerDay }
func (c *rulesConfig) ReferralBonus() int          { return c.referralBonus }
func (c *rulesConfig) HouseEdge() float64          { return c.houseEdge }
func (c *rulesConfig) ReservePercentage() float64  { return c.reservePercentage }
