package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_games_created_total",
		Help: "Games created since process start.",
	})

	playersAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_players_added_total",
		Help: "Players added across all games.",
	})

	transactionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_applied_total",
		Help: "Transactions applied, by type.",
	}, []string{"type"})

	transactionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_rejected_total",
		Help: "Transactions rejected, by reason.",
	}, []string{"reason"})
)
