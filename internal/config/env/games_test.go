package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/afrinode-dev/Africlick/internal/model"

	"github.com/stretchr/testify/require"
)

const testYAML = `
rules:
  min_deposit: 1000
  min_withdraw: 500
  points_to_money_ratio: 0.01
  wheel_attempts_per_day: 1
  referral_bonus: 100
  house_edge: 0.05
  reserve_percentage: 0.30

wheel:
  prizes: [50, 20, 30, 0]

games:
  - id: crash
    name: "Crash"
    family: range
    min_bet: 10
    active: true
    odds:
      min_multiplier: 0.0
      max_multiplier: 3.0
  - id: dice
    name: "Dés"
    family: threshold
    min_bet: 20
    active: true
    odds:
      win_chance: 0.45
      payout_multiplier: 2.0

offer_walls:
  cpa_grip: "https://example.com/wall"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRulesConfigFromYAML(t *testing.T) {
	cfg, err := NewRulesConfigFromYAML(writeConfig(t, testYAML))
	require.NoError(t, err)

	require.Equal(t, 1000, cfg.MinDeposit())
	require.Equal(t, 500, cfg.MinWithdraw())
	require.Equal(t, 0.01, cfg.PointsToMoneyRatio())
	require.Equal(t, 1, cfg.WheelAttemptsPerDay())
	require.Equal(t, 100, cfg.ReferralBonus())
	require.Equal(t, 0.05, cfg.HouseEdge())
	require.Equal(t, 0.30, cfg.ReservePercentage())
}

func TestNewRulesConfigRejectsZeroRatio(t *testing.T) {
	_, err := NewRulesConfigFromYAML(writeConfig(t, "rules:\n  points_to_money_ratio: 0\n"))
	require.Error(t, err)
}

func TestNewRulesConfigRejectsBadSplit(t *testing.T) {
	bad := "rules:\n  points_to_money_ratio: 0.01\n  house_edge: 0.6\n  reserve_percentage: 0.5\n"
	_, err := NewRulesConfigFromYAML(writeConfig(t, bad))
	require.Error(t, err)
}

func TestNewGamesConfigFromYAML(t *testing.T) {
	games, err := NewGamesConfigFromYAML(writeConfig(t, testYAML))
	require.NoError(t, err)
	require.Len(t, games, 2)

	require.Equal(t, model.FamilyRange, games[0].Family)
	require.Equal(t, 3.0, games[0].MaxMultiplier)
	require.Equal(t, model.FamilyThreshold, games[1].Family)
	require.Equal(t, 0.45, games[1].WinChance)
}

func TestNewGamesConfigRejectsUnknownFamily(t *testing.T) {
	bad := "games:\n  - id: x\n    family: roulette\n"
	_, err := NewGamesConfigFromYAML(writeConfig(t, bad))
	require.Error(t, err)
}

func TestNewGamesConfigRejectsEmptyTable(t *testing.T) {
	bad := "games:\n  - id: x\n    family: table\n    odds:\n      multipliers: []\n"
	_, err := NewGamesConfigFromYAML(writeConfig(t, bad))
	require.Error(t, err)
}

func TestNewWheelConfigFromYAML(t *testing.T) {
	cfg, err := NewWheelConfigFromYAML(writeConfig(t, testYAML))
	require.NoError(t, err)
	require.Equal(t, []int{50, 20, 30, 0}, cfg.Prizes())

	_, err = NewWheelConfigFromYAML(writeConfig(t, "wheel:\n  prizes: []\n"))
	require.Error(t, err)
}

func TestNewOfferWallsConfigFromYAML(t *testing.T) {
	cfg, err := NewOfferWallsConfigFromYAML(writeConfig(t, testYAML))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/wall", cfg.URLs()["cpa_grip"])
}
