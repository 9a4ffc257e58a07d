package env

import (
	"fmt"
	"os"

	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/model"

	"gopkg.in/yaml.v3"
)

type gamesYAML struct {
	Wheel struct {
		Prizes []int `yaml:"prizes"`
	} `yaml:"wheel"`
	Games []struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Family string `yaml:"family"`
		MinBet int    `yaml:"min_bet"`
		Active bool   `yaml:"active"`
		Odds   struct {
			MinMultiplier    float64   `yaml:"min_multiplier"`
			MaxMultiplier    float64   `yaml:"max_multiplier"`
			Multipliers      []float64 `yaml:"multipliers"`
			WinChance        float64   `yaml:"win_chance"`
			PayoutMultiplier float64   `yaml:"payout_multiplier"`
		} `yaml:"odds"`
	} `yaml:"games"`
	OfferWalls map[string]string `yaml:"offer_walls"`
}

// NewGamesConfigFromYAML - читает список игр с таблицами шансов.
func NewGamesConfigFromYAML(path string) ([]model.Game, error) {
	var raw gamesYAML
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(raw.Games))
	for _, g := range raw.Games {
		game := model.Game{
			ID:               g.ID,
			Name:             g.Name,
			MinBet:           g.MinBet,
			Active:           g.Active,
			Family:           model.GameFamily(g.Family),
			MinMultiplier:    g.Odds.MinMultiplier,
			MaxMultiplier:    g.Odds.MaxMultiplier,
			Multipliers:      g.Odds.Multipliers,
			WinChance:        g.Odds.WinChance,
			PayoutMultiplier: g.Odds.PayoutMultiplier,
		}

		switch game.Family {
		case model.FamilyRange:
			if game.MaxMultiplier <= game.MinMultiplier {
				return nil, fmt.Errorf("game %s: max_multiplier must exceed min_multiplier", g.ID)
			}
		case model.FamilyTable:
			if len(game.Multipliers) == 0 {
				return nil, fmt.Errorf("game %s: empty multiplier table", g.ID)
			}
		case model.FamilyThreshold:
			if game.WinChance <= 0 || game.WinChance >= 1 || game.PayoutMultiplier <= 0 {
				return nil, fmt.Errorf("game %s: invalid threshold odds", g.ID)
			}
		default:
			return nil, fmt.Errorf("game %s: unknown family %q", g.ID, g.Family)
		}

		games = append(games, game)
	}

	return games, nil
}

type wheelConfig struct {
	prizes []int
}

// NewWheelConfigFromYAML - читает таблицу призов колеса фортуны.
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	var raw gamesYAML
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}

	if len(raw.Wheel.Prizes) == 0 {
		return nil, fmt.Errorf("wheel prize table is empty")
	}

	return &wheelConfig{prizes: raw.Wheel.Prizes}, nil
}

func (c *wheelConfig) Prizes() []int {
	return c.prizes
}

type offerWallsConfig struct {
	urls map[string]string
}

func NewOfferWallsConfigFromYAML(path string) (config.OfferWallsConfig, error) {
	var raw gamesYAML
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}

	return &offerWallsConfig{urls: raw.OfferWalls}, nil
}

func (c *offerWallsConfig) URLs() map[string]string {
	return c.urls
}

func readYAML(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
