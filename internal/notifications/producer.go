package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"trainway/pkg/logger"
)

// Producer publishes booking confirmations to Kafka. Publishing is best
// effort; a committed booking is never failed for a broker problem.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   log,
	}, nil
}

func (p *Producer) PublishBookingConfirmed(ctx context.Context, event BookingConfirmation) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking confirmation: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish booking confirmation: %w", err)
	}

	p.logger.Debug("booking confirmation published",
		"booking_id", event.BookingID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
