package publisher

import (
	"context"

	"github.com/redis/go-redis/v9"

	"sjsage522/dirscraper/logger"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

// MessageField is the stream entry field holding the JSON record
const MessageField = "employee"

// RedisPublisher implements Publisher using Redis streams. Each key gets
// its own stream named "<prefix>:<key>".
type RedisPublisher struct {
	client          *redis.Client
	streamPrefix    string
	streamMaxLength int
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(addr string, db int, streamPrefix string, streamMaxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return NewRedisPublisherWithClient(client, streamPrefix, streamMaxLength)
}

// NewRedisPublisherWithClient wraps an existing client
func NewRedisPublisherWithClient(client *redis.Client, streamPrefix string, streamMaxLength int) *RedisPublisher {
	return &RedisPublisher{
		client:          client,
		streamPrefix:    streamPrefix,
		streamMaxLength: streamMaxLength,
	}
}

// Stream returns the stream name used for key
func (p *RedisPublisher) Stream(key string) string {
	return p.streamPrefix + ":" + key
}

// Ping checks the connection
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return apperrors.NewPublisher("redis", "ping failed", err)
	}
	return nil
}

// Publish appends the message to the key's stream
func (p *RedisPublisher) Publish(ctx context.Context, key string, message []byte) error {
	args := &redis.XAddArgs{
		Stream: p.Stream(key),
		Values: map[string]interface{}{
			MessageField: string(message),
		},
	}
	if p.streamMaxLength > 0 {
		args.MaxLen = int64(p.streamMaxLength)
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return apperrors.NewPublisher(args.Stream, "xadd failed", err)
	}
	return nil
}

// TrimStreams trims all streams to the configured maximum length
func (p *RedisPublisher) TrimStreams(ctx context.Context) error {
	if p.streamMaxLength <= 0 {
		return nil
	}

	streams, err := p.client.Keys(ctx, p.streamPrefix+":*").Result()
	if err != nil {
		return apperrors.NewPublisher(p.streamPrefix, "listing streams failed", err)
	}

	for _, stream := range streams {
		if err := p.client.XTrimMaxLen(ctx, stream, int64(p.streamMaxLength)).Err(); err != nil {
			return apperrors.NewPublisher(stream, "trim failed", err)
		}
	}

	logger.ForPublisher().Debug().Int("streams", len(streams)).Int("max_length", p.streamMaxLength).Msg("Streams trimmed")
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
