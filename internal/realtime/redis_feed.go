package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "hris:changes:"

type changeMessage struct {
	Collection string    `json:"collection"`
	CompanyID  string    `json:"companyId"`
	At         time.Time `json:"at"`
}

// RedisFeed fans changes out to every instance through Redis pub/sub.
type RedisFeed struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisFeed builds a feed on an existing client.
func NewRedisFeed(client *redis.Client, logger *zap.Logger) *RedisFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisFeed{client: client, logger: logger}
}

// Channel returns the pub/sub channel for a tenant's collection.
func Channel(collection, companyID string) string {
	return channelPrefix + collection + ":" + companyID
}

func (f *RedisFeed) Notify(ctx context.Context, collection, companyID string) error {
	payload, err := json.Marshal(changeMessage{Collection: collection, CompanyID: companyID, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, Channel(collection, companyID), payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context, collection, companyID string, fn func()) (func(), error) {
	channel := Channel(collection, companyID)
	pubsub := f.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			var change changeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				f.logger.Warn("malformed change message", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			fn()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				f.logger.Debug("close subscription", zap.String("channel", channel), zap.Error(err))
			}
			<-done
		})
	}, nil
}
