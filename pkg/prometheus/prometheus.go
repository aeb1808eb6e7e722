package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	CommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of processed commands",
		},
		[]string{"command", "status"},
	)
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Time taken to process command",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 30, 60},
		},
		[]string{"command"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_sessions_total",
			Help: "Current number of in-progress deck sessions",
		},
	)

	DecksGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_decks_generated_total",
			Help: "Count of generated decks",
		},
		[]string{"language"},
	)

	ProviderFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_provider_failures_total",
			Help: "Count of failed external provider calls",
		},
		[]string{"provider"},
	)

	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_cache_operations_total",
			Help: "Image cache lookups by result",
		},
		[]string{"result"},
	)

	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent messages",
		},
		[]string{"type"}, // text, image, document
	)
)

func Init() {
	prometheus.MustRegister(
		CommandCounter,
		CommandDuration,
		ActiveSessions,
		DecksGenerated,
		ProviderFailures,
		CacheOperations,
		MessagesSent,
	)
}
