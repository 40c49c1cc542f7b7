package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"member_portal_backend/platform/config"
	"member_portal_backend/platform/logger"
)

// Worker consumes the delivery queue and forwards events to the configured
// webhook. With no webhook configured it logs and acks, so queues drain in
// development.
type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	webhookURL string
	httpClient *http.Client
	log        *logger.Logger
}

func NewWorker(cfg config.AnalyticsConfig, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAnalyticsQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAnalyticsConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		webhookURL: cfg.GetAnalyticsWebhookURL(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}

	mux.HandleFunc(TaskAnalyticsEvent, w.handleAnalyticsEvent)

	return w, nil
}

func (w *Worker) handleAnalyticsEvent(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAnalyticsEventPayload(task)
	if err != nil {
		return err
	}

	if w.webhookURL == "" {
		w.log.Info("analytics webhook not configured, dropping event", "event", payload.Name)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("analytics webhook returned %d", resp.StatusCode)
	}

	w.log.AnalyticsEvent(payload.Name, true)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("analytics worker stopped", "error", err)
	}
}
