package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const namespace = "tictactoe"

// Metrics are the game counters exported on /metrics.
type Metrics struct {
	SessionsCreated prometheus.Counter
	Moves           prometheus.Counter
	InvalidMoves    prometheus.Counter
	Rounds          *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Number of sessions created.",
		}),
		Moves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Number of accepted moves.",
		}),
		InvalidMoves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_moves_total",
			Help:      "Number of rejected moves.",
		}),
		Rounds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_finished_total",
			Help:      "Number of finished rounds by result.",
		}, []string{"result"}),
	}
}

// ObserveOutcome - counts a finished round; ongoing rounds are ignored.
func (that *Metrics) ObserveOutcome(outcome entity.Outcome) {
	switch {
	case outcome.Status == entity.StatusDraw:
		that.Rounds.WithLabelValues("draw").Inc()
	case outcome.Status == entity.StatusWon && outcome.Winner != nil:
		that.Rounds.WithLabelValues("won_" + string(outcome.Winner.Mark)).Inc()
	}
}
