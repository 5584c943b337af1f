package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/logger"
)

// Task lifecycle actions published to the event topic.
const (
	ActionCreated   = "task.created"
	ActionUpdated   = "task.updated"
	ActionCompleted = "task.completed"
	ActionDeleted   = "task.deleted"
)

// TaskEvent is the JSON payload written to Kafka.
type TaskEvent struct {
	Action string    `json:"action"`
	TaskID string    `json:"taskId"`
	Owner  string    `json:"owner"`
	Title  string    `json:"title"`
	At     time.Time `json:"at"`
}

// Producer publishes task lifecycle events. Publishing is best-effort: a
// broker failure is logged and never surfaced to the request.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Producer) Publish(ctx context.Context, action string, task *domain.Task) {
	event := TaskEvent{
		Action: action,
		TaskID: task.ID,
		Owner:  task.Owner,
		Title:  task.Title,
		At:     time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.ErrorLog(ctx, "failed to encode task event: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(task.ID),
		Value: value,
		Time:  event.At,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.ErrorLog(ctx, "failed to write kafka message: %v", err)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
