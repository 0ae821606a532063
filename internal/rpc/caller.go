// Package rpc implements the correlated request/reply transport used to pull
// domain facts from their owning ERP services over the message broker.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/ITS-ERP/qms-risk-backend/internal/logging"
	"github.com/ITS-ERP/qms-risk-backend/internal/messaging"
	"github.com/ITS-ERP/qms-risk-backend/internal/metrics"
)

// DefaultCallTimeout bounds the wait for a broker reply. Calls that exceed it
// signal the fallback path instead of failing.
const DefaultCallTimeout = 5 * time.Second

// Headers carries the caller's credentials to the owning service.
type Headers struct {
	Authorization string `json:"authorization"`
}

// Envelope is the request payload published to a domain queue. It is owned
// exclusively by one in-flight call and discarded once the call settles.
type Envelope struct {
	CorrelationID string         `json:"correlation_id"`
	TenantID      int64          `json:"tenant_id"`
	Headers       Headers        `json:"headers"`
	Args          map[string]any `json:"args,omitempty"`
}

// Caller issues one correlated request/reply round-trip per Call. The broker
// connection is long-lived and shared; each call gets its own exclusive reply
// inbox and a fresh correlation ID.
type Caller struct {
	client  messaging.Publisher
	timeout time.Duration
	logger  *slog.Logger
}

// NewCaller creates a Caller on top of an established broker connection.
// A non-positive timeout falls back to DefaultCallTimeout.
func NewCaller(client messaging.Publisher, timeout time.Duration) *Caller {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Caller{
		client:  client,
		timeout: timeout,
		logger:  slog.Default().With(slog.String("component", "rpc-caller")),
	}
}

// Timeout returns the configured reply wait bound.
func (c *Caller) Timeout() time.Duration { return c.timeout }

// Call publishes a correlated request to queue and waits for the reply.
//
// The return triple distinguishes the three outcomes the gateways care about:
//   - served=true: the owner service replied; payload holds the raw reply.
//   - served=false, err=nil: the exchange timed out or the broker could not
//     be reached. The caller should read from the fallback store. A warning
//     is logged; the timeout itself is never surfaced as an error.
//   - err != nil: the request could not be constructed. Not a fallback case.
//
// Decoding the reply payload is the caller's concern: a malformed reply is a
// serialization-contract break and must fail fast rather than fall back.
func (c *Caller) Call(ctx context.Context, queue string, tenantID int64, authToken string, extra map[string]any) (payload []byte, served bool, err error) {
	env := Envelope{
		CorrelationID: uuid.New().String(),
		TenantID:      tenantID,
		Headers:       Headers{Authorization: authToken},
		Args:          extra,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, false, fmt.Errorf("marshal request envelope: %w", err)
	}

	start := time.Now()
	msg, err := c.client.Request(ctx, queue, data, c.timeout)
	metrics.RPCDuration.WithLabelValues(queue).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := metrics.OutcomeError
		if isTimeout(err) {
			outcome = metrics.OutcomeTimeout
		}
		metrics.RPCRequestsTotal.WithLabelValues(queue, outcome).Inc()
		c.logger.Warn("broker exchange failed, signalling fallback",
			logging.Queue(queue),
			logging.Tenant(tenantID),
			slog.String("correlation_id", env.CorrelationID),
			slog.String("outcome", outcome),
			logging.Error(err))
		return nil, false, nil
	}

	metrics.RPCRequestsTotal.WithLabelValues(queue, metrics.OutcomeServed).Inc()
	c.logger.Debug("broker reply received",
		logging.Queue(queue),
		logging.Tenant(tenantID),
		slog.String("correlation_id", env.CorrelationID),
		logging.Duration(time.Since(start).Milliseconds()),
		slog.Int("bytes", len(msg.Data)))
	return msg.Data, true, nil
}

// Unavailable is a transport that signals the fallback path on every call.
// It stands in for the Caller when no broker connection could be established
// at startup, keeping the gateways on a single code path.
type Unavailable struct{}

// Call always reports served=false so the gateway reads its fallback store.
func (Unavailable) Call(ctx context.Context, queue string, tenantID int64, authToken string, extra map[string]any) ([]byte, bool, error) {
	return nil, false, nil
}

// isTimeout distinguishes a bounded-wait expiry from other transport failures.
// Both outcomes trigger fallback; the label only affects diagnostics.
func isTimeout(err error) bool {
	return errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, nats.ErrNoResponders)
}
