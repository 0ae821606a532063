package rpc

import (
	"context"
	"time"

	"github.com/ITS-ERP/qms-risk-backend/internal/messaging"
)

// PingReply is the payload returned on the risk service liveness queue.
type PingReply struct {
	Service string    `json:"service"`
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
}

// ServePing subscribes the service to its liveness queue. Peer services can
// issue a request on the queue and get a status reply, using the same
// correlated exchange the gateways issue outbound. Requests are load-balanced
// across instances in the queue group; requests without a reply inbox are
// dropped.
func ServePing(client messaging.Client, service string) (messaging.Subscription, error) {
	return client.QueueSubscribe(messaging.QueueRiskPing, messaging.QueueGroupRisk, func(ctx context.Context, msg *messaging.Message) error {
		if msg.Reply == "" {
			return nil
		}
		return client.PublishJSON(ctx, msg.Reply, PingReply{
			Service: service,
			Status:  "ok",
			Time:    time.Now().UTC(),
		})
	})
}
