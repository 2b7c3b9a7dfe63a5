package wordlerouter

import (
	"context"
	"log/slog"
	"time"

	wordlehandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// WordleRouter wires the inbound chat topic to the reply topic.
type WordleRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewWordleRouter wraps router. A nil registerer disables router metrics.
func NewWordleRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	registerer prometheus.Registerer,
) *WordleRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registerer != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registerer, "", "")
		metricsBuilder = &builder
	}
	return &WordleRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the message handler.
func (r *WordleRouter) Configure(ctx context.Context, handlers wordlehandlers.Handlers, inboundTopic, replyTopic string) error {
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
	)

	r.Router.AddHandler(
		"wordle."+inboundTopic,
		inboundTopic,
		r.subscriber,
		replyTopic,
		r.publisher,
		handlers.HandleMessageReceived,
	)

	r.logger.InfoContext(ctx, "Wordle router configured",
		slog.String("inbound_topic", inboundTopic),
		slog.String("reply_topic", replyTopic),
	)
	return nil
}

// Run blocks until ctx is canceled or the router is closed.
func (r *WordleRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

func (r *WordleRouter) Close() error {
	return r.Router.Close()
}
