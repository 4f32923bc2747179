// Package notify forwards operator notifications to an external webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Notifier interface {
	ContactReceived(ctx context.Context, name, email, subject string) error
}

// WebhookNotifier posts a small JSON payload to a configured endpoint
// (e.g. a Slack-compatible incoming webhook). Delivery is best effort;
// callers log failures and move on.
type WebhookNotifier struct {
	client *resty.Client
}

func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		client: resty.New().SetBaseURL(webhookURL),
	}
}

type contactPayload struct {
	Text string `json:"text"`
}

func (n *WebhookNotifier) ContactReceived(ctx context.Context, name, email, subject string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	payload := contactPayload{
		Text: fmt.Sprintf("Ny henvendelse fra %s <%s>: %s", name, email, subject),
	}

	res, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("")
	if err != nil {
		return fmt.Errorf("error posting contact notification: %w", err)
	}

	if res.IsError() {
		return fmt.Errorf("contact notification rejected: status %d: %s", res.StatusCode(), res.String())
	}

	return nil
}
