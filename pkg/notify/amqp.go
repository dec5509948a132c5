package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

const instructionQueue = "payment.instructions.initiated"

// AMQPConfig carries broker settings. An empty URL disables publishing.
type AMQPConfig struct {
	URL string
}

// AMQPConfigFromEnv reads broker config from environment variables.
func AMQPConfigFromEnv() AMQPConfig {
	return AMQPConfig{URL: os.Getenv("BROKER_URL")}
}

// AMQPPublisher publishes initiated instructions to a durable queue consumed
// by the settlement pipeline.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialAMQP connects to the broker and declares the instruction queue.
func DialAMQP(cfg AMQPConfig) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(instructionQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) InstructionInitiated(ctx context.Context, inst *entity.Instruction) error {
	body, err := json.Marshal(inst)
	if err != nil {
		return fmt.Errorf("encode instruction: %w", err)
	}
	return p.ch.PublishWithContext(ctx, "", instructionQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    inst.ID,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
