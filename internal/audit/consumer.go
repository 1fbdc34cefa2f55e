package audit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const consumerGroup = "siteapi"

// Consumer drains the orphan stream into the cleanup set. It runs
// in-process for the lifetime of the server.
type Consumer struct {
	client   *redis.Client
	consumer string
	log      zerolog.Logger
}

func NewConsumer(client *redis.Client, consumer string, log zerolog.Logger) *Consumer {
	return &Consumer{client: client, consumer: consumer, log: log}
}

func (c *Consumer) Start(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, OrphanStream, consumerGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := c.read(ctx); err != nil && ctx.Err() == nil {
				c.log.Error().Err(err).Msg("orphan stream read error")
				time.Sleep(2 * time.Second)
			}
		}
	}
}

func (c *Consumer) read(ctx context.Context) error {
	result, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    consumerGroup,
		Consumer: c.consumer,
		Streams:  []string{OrphanStream, ">"},
		Count:    10,
		Block:    5 * time.Second,
	}).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	for _, stream := range result {
		for _, msg := range stream.Messages {
			if err := c.handle(ctx, msg); err != nil {
				c.log.Error().Err(err).Str("message_id", msg.ID).Msg("orphan handling failed")
				continue
			}
			if err := c.client.XAck(ctx, OrphanStream, consumerGroup, msg.ID).Err(); err != nil {
				c.log.Error().Err(err).Str("message_id", msg.ID).Msg("orphan ack failed")
			}
		}
	}
	return nil
}

func (c *Consumer) handle(ctx context.Context, msg redis.XMessage) error {
	path, _ := msg.Values["path"].(string)
	reason, _ := msg.Values["reason"].(string)
	if path == "" {
		return nil
	}

	c.log.Info().Str("path", path).Str("reason", reason).Msg("orphan recorded for cleanup")
	return c.client.SAdd(ctx, OrphanSet, path).Err()
}
