package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/sakuray/campusvault/pkg/configs"
)

// init 注册进程内 gochannel 工厂.
func init() {
	RegisterFactory(configs.MQTypeGoChannel, goChannelFactory)
}

// goChannelFactory 创建进程内 Publisher & Subscriber.
// gochannel 的 Publisher 和 Subscriber 是同一个对象，消息不出进程.
func goChannelFactory(
	ctx context.Context,
	_ *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return pubSub, pubSub, nil
}
