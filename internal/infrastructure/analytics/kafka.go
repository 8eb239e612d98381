package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cancelflow/internal/domain/events"

	"github.com/segmentio/kafka-go"
)

const (
	writeTimeout = 10 * time.Second
)

// KafkaPublisher publishes analytics events to Kafka topics, one
// writer per topic, keyed by session id
type KafkaPublisher struct {
	brokers   []string
	writers   map[string]*kafka.Writer
	writersMu sync.RWMutex
	running   bool
	mu        sync.RWMutex
}

func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	return &KafkaPublisher{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
		running: true,
	}, nil
}

// Publish publishes an event to a topic
func (kp *KafkaPublisher) Publish(ctx context.Context, topicName string, event events.Event) error {
	kp.mu.RLock()
	if !kp.running {
		kp.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	kp.mu.RUnlock()

	eventJSON, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.SessionID()),
		Value: eventJSON,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type())},
			{Key: "event_id", Value: []byte(event.ID())},
		},
		Time: event.Timestamp(),
	}

	writer := kp.getOrCreateWriter(topicName)

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := writer.WriteMessages(writeCtx, message); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topicName, err)
	}

	return nil
}

func (kp *KafkaPublisher) getOrCreateWriter(topicName string) *kafka.Writer {
	kp.writersMu.RLock()
	writer, exists := kp.writers[topicName]
	kp.writersMu.RUnlock()

	if exists {
		return writer
	}

	kp.writersMu.Lock()
	defer kp.writersMu.Unlock()

	if writer, exists = kp.writers[topicName]; exists {
		return writer
	}

	writer = &kafka.Writer{
		Addr:         kafka.TCP(kp.brokers...),
		Topic:        topicName,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
	}
	kp.writers[topicName] = writer

	return writer
}

func marshalEvent(event events.Event) ([]byte, error) {
	envelope := map[string]interface{}{
		"event_id":   event.ID(),
		"event_type": event.Type(),
		"session_id": event.SessionID(),
		"data":       event.Data(),
		"timestamp":  event.Timestamp(),
	}

	return json.Marshal(envelope)
}

// Close closes every topic writer
func (kp *KafkaPublisher) Close() error {
	kp.mu.Lock()
	kp.running = false
	kp.mu.Unlock()

	kp.writersMu.Lock()
	defer kp.writersMu.Unlock()

	var firstErr error
	for topic, writer := range kp.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close writer for topic %s: %w", topic, err)
		}
	}

	return firstErr
}
