package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"resty.dev/v3"

	"fanpulse/internal/config"
)

var (
	deliveryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fanpulse_notify_latency",
			Help:    "Histogram of notification webhook latency in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"path", "status_code"},
	)

	deliveriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fanpulse_notify_failures_total",
		Help: "The total number of failed notification deliveries.",
	})
)

// Webhook posts platform events (tier promotions, new comments) to a
// downstream notification service. Delivery is fire-and-forget: failures are
// counted and logged, never surfaced to the calling operation.
type Webhook struct {
	Logger *slog.Logger
	Config *config.Config

	client *resty.Client
}

func (w *Webhook) Init(_ context.Context) error {
	w.Logger = w.Logger.With("component", "notify.Webhook")

	w.client = resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         1 * time.Second,
		DialerKeepAlive:       1 * time.Second,
		IdleConnTimeout:       1 * time.Second,
		TLSHandshakeTimeout:   1 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 1 * time.Second,
	})
	w.client.AddResponseMiddleware(metricMiddleware)

	return nil
}

func (w *Webhook) Shutdown(_ context.Context) error {
	return w.client.Close()
}

func (w *Webhook) Notify(ctx context.Context, event string, payload map[string]any) {
	if w.Config.NotifyURL == "" {
		return
	}

	body := map[string]any{
		"id":      uuid.NewString(),
		"event":   event,
		"payload": payload,
	}

	go func() {
		// Detached from the request context so an early handler return
		// doesn't cancel delivery.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		res, err := w.client.R().
			WithContext(ctx).
			SetBody(body).
			Post(w.Config.NotifyURL)
		if err != nil || res.IsError() {
			deliveriesFailed.Inc()
			w.Logger.Warn("notification delivery failed", "event", event, "error", err)
		}
	}()
}

func metricMiddleware(_ *resty.Client, response *resty.Response) error {
	reqURL, err := url.Parse(response.Request.URL)
	if err != nil {
		return err
	}

	deliveryLatency.WithLabelValues(
		reqURL.Path,
		fmt.Sprintf("%d", response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}
