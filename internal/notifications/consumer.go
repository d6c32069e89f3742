package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"

	"trainway/pkg/logger"
)

// Consumer reads booking confirmations from Kafka and fans them out to a
// pool of email workers.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	workers int
	sender  EmailSender
	logger  *logger.Logger

	jobs chan BookingConfirmation
	wg   sync.WaitGroup
}

func NewConsumer(brokers []string, groupID, topic string, workers int, sender EmailSender, log *logger.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer group: %w", err)
	}

	if workers < 1 {
		workers = 1
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		workers: workers,
		sender:  sender,
		logger:  log,
		jobs:    make(chan BookingConfirmation, workers*2),
	}, nil
}

// Start runs the consume loop until ctx is cancelled. It blocks; run it in a
// goroutine.
func (c *Consumer) Start(ctx context.Context) {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(i)
	}

	handler := &confirmationHandler{consumer: c}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				break
			}
			c.logger.Error("kafka consume error", "error", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	close(c.jobs)
	c.wg.Wait()
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

func (c *Consumer) worker(id int) {
	defer c.wg.Done()
	for event := range c.jobs {
		if err := c.sender.SendBookingConfirmation(event); err != nil {
			c.logger.Error("confirmation email failed",
				"worker", id,
				"booking_id", event.BookingID,
				"pnr", event.PNR,
				"error", err,
			)
			continue
		}
		c.logger.Info("confirmation email sent",
			"worker", id,
			"booking_id", event.BookingID,
			"pnr", event.PNR,
		)
	}
}

type confirmationHandler struct {
	consumer *Consumer
}

func (h *confirmationHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *confirmationHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *confirmationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var event BookingConfirmation
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Malformed message, mark it and move on.
			h.consumer.logger.Error("malformed booking confirmation", "offset", msg.Offset, "error", err)
			session.MarkMessage(msg, "")
			continue
		}

		select {
		case h.consumer.jobs <- event:
		case <-session.Context().Done():
			return nil
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
