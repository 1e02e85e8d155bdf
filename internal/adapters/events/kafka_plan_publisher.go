package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"time"

	"github.com/segmentio/kafka-go"
)

// PlanCompletedEvent is the event type carried in every message.
const PlanCompletedEvent = "plan.completed"

// PlanCompleted is the JSON payload published after a plan is saved.
type PlanCompleted struct {
	Event          string         `json:"event"`
	PlanID         string         `json:"plan_id"`
	CreatedAt      time.Time      `json:"created_at"`
	TripCount      int            `json:"trip_count"`
	TripsByVehicle map[string]int `json:"trips_by_vehicle"`
	Unassigned     []string       `json:"unassigned"`
	Complete       bool           `json:"complete"`
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPlanPublisher announces completed plans on a Kafka topic, keyed by plan id.
type KafkaPlanPublisher struct {
	w messageWriter
}

func NewKafkaPlanPublisher(brokers []string, topic string) (*KafkaPlanPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka plan publisher: no brokers")
	}
	if topic == "" {
		return nil, errors.New("kafka plan publisher: topic must not be empty")
	}

	return &KafkaPlanPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}, nil
}

func NewPlanCompleted(plan *domain.Plan) PlanCompleted {
	byVehicle := make(map[string]int)
	for t, n := range plan.TripsByVehicle() {
		byVehicle[string(t)] = n
	}
	return PlanCompleted{
		Event:          PlanCompletedEvent,
		PlanID:         plan.ID,
		CreatedAt:      plan.CreatedAt,
		TripCount:      len(plan.Trips),
		TripsByVehicle: byVehicle,
		Unassigned:     append([]string{}, plan.Unassigned...),
		Complete:       plan.Complete(),
	}
}

func (p *KafkaPlanPublisher) PublishPlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "events.kafka.PublishPlan")(&err)

	if plan == nil {
		return errors.New("publish plan: plan is nil")
	}

	value, err := json.Marshal(NewPlanCompleted(plan))
	if err != nil {
		return fmt.Errorf("publish plan %s: encode: %w", plan.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(plan.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(PlanCompletedEvent)},
		},
	}
	if reqID := obs.RequestID(ctx); reqID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "request_id", Value: []byte(reqID)})
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish plan %s: %w", plan.ID, err)
	}
	return nil
}

func (p *KafkaPlanPublisher) Close() error {
	return p.w.Close()
}
