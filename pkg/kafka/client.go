// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"faq-support-go/internal/config"
	"faq-support-go/internal/model"
	"faq-support-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// MessageWriter 是 kafka.Writer 中被生产者使用的部分。
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 将回复事件发布到 Kafka。写入是异步的，失败只记录日志。
type Producer struct {
	writer MessageWriter
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.Brokers, ",")...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Errorf("Kafka 异步写入失败: %d 条消息, error: %v", len(messages), err)
			}
		},
	}
	log.Infof("Kafka 生产者初始化成功, topic: %s", cfg.Topic)
	return NewProducerWithWriter(w)
}

// NewProducerWithWriter 使用给定的 writer 创建生产者。
func NewProducerWithWriter(w MessageWriter) *Producer {
	return &Producer{writer: w}
}

// PublishReply 发送一条回复事件，以会话 ID 作为分区键。
func (p *Producer) PublishReply(ctx context.Context, event model.ReplyEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal reply event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ConversationID),
		Value: payload,
	})
}

// Close 刷新缓冲区中的消息并关闭连接。
func (p *Producer) Close() error {
	return p.writer.Close()
}
