package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gofish/models"

	"github.com/redis/go-redis/v9"
)

// streamMaxLen bounds the stream history
const streamMaxLen = 10000

// StreamPublisher appends events to a Redis Stream shared by all instances
type StreamPublisher struct {
	rdb    *redis.Client
	stream string
}

func NewStreamPublisher(rdb *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{rdb: rdb, stream: stream}
}

// Publish publishes an event to the Redis Stream
func (p *StreamPublisher) Publish(ctx context.Context, event models.GameEvent) error {
	eventData, err := MarshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{"data": eventData},
		MaxLen: streamMaxLen,
		Approx: true,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// StreamConsumer forwards stream events to the local hub. Each instance reads
// through its own consumer group so every instance sees every event.
type StreamConsumer struct {
	rdb      *redis.Client
	stream   string
	group    string
	consumer string
	hub      Broadcaster
}

// NewStreamConsumer creates a consumer bound to this process
func NewStreamConsumer(rdb *redis.Client, stream string, hub Broadcaster) *StreamConsumer {
	hostname, _ := os.Hostname()
	instanceID := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &StreamConsumer{
		rdb:      rdb,
		stream:   stream,
		group:    fmt.Sprintf("%s:hub:%s", stream, instanceID),
		consumer: fmt.Sprintf("consumer-%s", instanceID),
		hub:      hub,
	}
}

// Run reads the stream until ctx is cancelled. Only events published after
// the group is created are delivered.
func (sc *StreamConsumer) Run(ctx context.Context) error {
	err := sc.rdb.XGroupCreateMkStream(ctx, sc.stream, sc.group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	defer sc.destroyGroup()

	for {
		if ctx.Err() != nil {
			return nil
		}

		streams, err := sc.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    sc.group,
			Consumer: sc.consumer,
			Streams:  []string{sc.stream, ">"},
			Count:    100,
			Block:    time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			log.Printf("Event stream read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				if err := sc.processMessage(message); err != nil {
					log.Printf("Dropping event %s: %v", message.ID, err)
				}
				if err := sc.rdb.XAck(ctx, sc.stream, sc.group, message.ID).Err(); err != nil {
					log.Printf("Failed to ack event %s: %v", message.ID, err)
				}
			}
		}
	}
}

// processMessage decodes a stream message and forwards it to the hub
func (sc *StreamConsumer) processMessage(message redis.XMessage) error {
	eventData, ok := message.Values["data"].(string)
	if !ok {
		return fmt.Errorf("invalid message format: missing data field")
	}

	event, err := UnmarshalEvent(eventData)
	if err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	sc.hub.Broadcast(event)
	return nil
}

// destroyGroup removes this instance's group so restarts do not leave
// orphaned groups behind.
func (sc *StreamConsumer) destroyGroup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sc.rdb.XGroupDestroy(ctx, sc.stream, sc.group).Err(); err != nil {
		log.Printf("Failed to remove consumer group %s: %v", sc.group, err)
	}
}
