package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Расчеты: коммиты и откаты атомарных юнитов
	SettlementCommits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "africlick",
		Name:      "settlement_commits_total",
		Help:      "Committed settlements.",
	})

	SettlementRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "africlick",
		Name:      "settlement_rollbacks_total",
		Help:      "Settlements rolled back by unexpected errors.",
	})

	// Ставки по играм и исходам (game_win / game_loss)
	Wagers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "africlick",
		Name:      "wagers_total",
		Help:      "Resolved wagers by game and outcome.",
	}, []string{"game", "outcome"})

	WheelSpins = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "africlick",
		Name:      "wheel_spins_total",
		Help:      "Completed wheel spins.",
	})
)
