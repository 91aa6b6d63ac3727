package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"autoreel/internal/config"
)

const userAgent = "autoreel/0.1"

// RunSummary is the subset of a finished run worth announcing.
type RunSummary struct {
	Trigger        string
	OutputPath     string
	Entries        int
	TotalSeconds   float64
	Deleted        int
	DeleteFailures int
	Elapsed        time.Duration
}

// Service defines the notification surface used by the pipeline and watcher.
type Service interface {
	NotifyRunCompleted(ctx context.Context, summary RunSummary) error
	NotifyRunFailed(ctx context.Context, trigger string, err error) error
	NotifyChangesDetected(ctx context.Context, items int) error
	TestNotification(ctx context.Context) error
}

// NewService builds an ntfy-backed service, or a no-op when no topic is set.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, summary RunSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "🎬 %s ready: %d entries, %.2f min", filepath.Base(summary.OutputPath), summary.Entries, summary.TotalSeconds/60)
	if summary.Elapsed > 0 {
		fmt.Fprintf(&b, " (took %s)", summary.Elapsed.Round(time.Second))
	}
	if summary.Deleted > 0 || summary.DeleteFailures > 0 {
		fmt.Fprintf(&b, "\nSources trashed: %d", summary.Deleted)
		if summary.DeleteFailures > 0 {
			fmt.Fprintf(&b, ", %d not deleted", summary.DeleteFailures)
		}
	}
	data := payload{
		title:   "autoreel - Video Ready",
		message: b.String(),
		tags:    []string{"autoreel", triggerTag(summary.Trigger), "completed"},
	}
	if summary.DeleteFailures > 0 {
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, trigger string, err error) error {
	message := "❌ Assembly failed"
	if err != nil {
		message += ": " + strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "autoreel - Error",
		message:  message,
		tags:     []string{"autoreel", triggerTag(trigger), "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyChangesDetected(ctx context.Context, items int) error {
	data := payload{
		title:    "autoreel - Folder Changed",
		message:  fmt.Sprintf("📂 Input folder changed (%d items); auto re-run is off", items),
		tags:     []string{"autoreel", "watch", "changed"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "autoreel - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"autoreel", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func triggerTag(trigger string) string {
	if trigger = strings.TrimSpace(trigger); trigger == "" {
		return "manual"
	}
	return trigger
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, RunSummary) error { return nil }
func (noopService) NotifyRunFailed(context.Context, string, error) error { return nil }
func (noopService) NotifyChangesDetected(context.Context, int) error     { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
