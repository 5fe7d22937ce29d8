package client

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/centerline-io/crmapi/pkg/crm"
)

const defaultEventSubjectPrefix = "crm.mutations"

var mutationOperations = []string{crm.OpInsert, crm.OpUpdate, crm.OpDelete}

// mutationEvent is published once per successful insert/update/delete so
// downstream integrations can react to record changes.
type mutationEvent struct {
	Resource   string    `json:"resource"`
	Operation  string    `json:"operation"`
	RecordID   string    `json:"record_id,omitempty"`
	Records    int       `json:"records"`
	OccurredAt time.Time `json:"occurred_at"`
}

type eventPublisher struct {
	conn   *nats.Conn
	prefix string
	logger crm.Logger
}

func newEventPublisher(url, prefix string, logger crm.Logger) (*eventPublisher, error) {
	if prefix == "" {
		prefix = defaultEventSubjectPrefix
	}

	conn, err := nats.Connect(url, nats.Name("crmapi"))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}

	return &eventPublisher{conn: conn, prefix: prefix, logger: logger}, nil
}

func (p *eventPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// publishMutation emits an event after a successful mutation. Publishing is
// best effort: a broker hiccup must not fail a call that already succeeded.
func (c *Client) publishMutation(query *crm.Query, resp *crm.Response) {
	if c.events == nil || !slices.Contains(mutationOperations, query.Operation()) {
		return
	}

	id, _ := query.Param("id")

	event := mutationEvent{
		Resource:   query.Resource(),
		Operation:  query.Operation(),
		RecordID:   id,
		Records:    resp.Count(),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	subject := c.events.prefix + "." + query.Resource() + "." + query.Operation()

	err = c.events.conn.Publish(subject, payload)
	if err != nil && c.logger != nil {
		c.logger.Warn("publishing mutation event failed", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}
