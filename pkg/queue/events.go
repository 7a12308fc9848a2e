package queue

import (
	"context"
	"fmt"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"

	"github.com/sakuray/campusvault/pkg/internal/storage/mq"
)

// Publish 序列化载荷并发布到指定主题.
func Publish[T any](ctx context.Context, client *mq.Client, topic string, payload T) error {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)

	return client.Publish(ctx, topic, msg)
}

// Decode 反序列化消息载荷.
func Decode[T any](msg *message.Message) (T, error) {
	var payload T
	if err := sonic.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("unmarshal payload: %w", err)
	}

	return payload, nil
}
