// Package events consumes produto lifecycle events from the broker.
package events

import (
	"encoding/json"
	"fmt"

	"produtos/internal/dtos"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AuditHandler returns a delivery handler that decodes produto events and
// writes them to the log. Undecodable messages are reported as errors so the
// consumer rejects them.
func AuditHandler(logger *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event dtos.ProdutoEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode produto event: %w", err)
		}
		if event.Evento == "" {
			return fmt.Errorf("produto event without name (routing key %q)", msg.RoutingKey)
		}

		logger.Info("Produto event received",
			zap.String("evento", event.Evento),
			zap.String("routing_key", msg.RoutingKey),
			zap.String("produto_id", event.Produto.ID.String()),
			zap.String("nome", event.Produto.Nome),
			zap.Float64("preco", event.Produto.Preco),
			zap.Int("quantidade", event.Produto.Quantidade),
			zap.Time("ocorrido_em", event.OcorridoEm))
		return nil
	}
}
