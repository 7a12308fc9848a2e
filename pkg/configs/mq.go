package configs

import (
	"github.com/spf13/viper"
)

// MQType 消息队列类型.
type MQType string

const (
	// MQTypeGoChannel 进程内 pub/sub，无外部依赖.
	MQTypeGoChannel MQType = "gochannel"
	// MQTypeNATS NATS 消息队列.
	MQTypeNATS MQType = "nats"

	DefaultMQURL         = "localhost:4222"
	DefaultMQClientID    = "campusvault-app" // 默认客户端ID
	DefaultMaxReconnects = 5                 // 默认最大重连次数
	DefaultReconnectWait = 5                 // 默认重连等待时间（秒）
	DefaultPingInterval  = 20                // 默认ping间隔（秒）
	DefaultBufferSize    = 32768             // 默认重连缓冲区大小（32KB）
)

// MQConfig 消息队列配置.
type MQConfig struct {
	Type MQType       `mapstructure:"type" rule:"oneof=gochannel nats"`
	NATS MQNATSConfig `mapstructure:"nats"`
}

// MQNATSConfig NATS MQ 配置.
type MQNATSConfig struct {
	URL              string `mapstructure:"url"               rule:"hostname_port"`
	User             string `mapstructure:"user"`
	Password         string `mapstructure:"password"`
	ClientID         string `mapstructure:"client_id"`
	MaxReconnects    int    `mapstructure:"max_reconnects"    rule:"min=0,max=100"`
	ReconnectWait    int    `mapstructure:"reconnect_wait"    rule:"min=1,max=300"`
	PingInterval     int    `mapstructure:"ping_interval"     rule:"min=1,max=300"`
	BufferSize       int    `mapstructure:"buffer_size"       rule:"min=1024,max=1048576"`
	JetStreamEnabled bool   `mapstructure:"jetstream_enabled"`
	SubjectPrefix    string `mapstructure:"subject_prefix"`
	DurablePrefix    string `mapstructure:"durable_prefix"`
}

// GetMQType 返回当前配置的消息队列类型.
func (c *MQConfig) GetMQType() MQType {
	return c.Type
}

// setDefaults 设置MQ配置的默认值.
func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeGoChannel)

	// NATS 默认值
	v.SetDefault("mq.nats.url", DefaultMQURL)
	v.SetDefault("mq.nats.user", "")
	v.SetDefault("mq.nats.password", "")
	v.SetDefault("mq.nats.client_id", DefaultMQClientID)
	v.SetDefault("mq.nats.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("mq.nats.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("mq.nats.ping_interval", DefaultPingInterval)
	v.SetDefault("mq.nats.buffer_size", DefaultBufferSize)
	v.SetDefault("mq.nats.jetstream_enabled", false)
	v.SetDefault("mq.nats.subject_prefix", "campusvault.")
	v.SetDefault("mq.nats.durable_prefix", "campusvault-durable")
}
