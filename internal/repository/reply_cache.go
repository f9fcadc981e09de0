package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedReply 是一次已完成的发送结果，用于客户端携带相同幂等键重试时直接返回。
// MessageHash 为原始消息的摘要，重试的消息不同时记录不可复用。
type CachedReply struct {
	Reply       string `json:"reply"`
	SessionID   string `json:"sessionId"`
	MessageHash string `json:"messageHash"`
}

// ReplyCache 定义了幂等重放记录的读写接口。
// 记录按 (conversationID, key) 隔离；conversationID 为空表示请求未携带会话。
type ReplyCache interface {
	Get(ctx context.Context, conversationID, key string) (*CachedReply, bool, error)
	Put(ctx context.Context, conversationID, key string, reply CachedReply, ttl time.Duration) error
}

type redisReplyCache struct {
	redisClient *redis.Client
}

// NewReplyCache 创建一个基于 Redis 的 ReplyCache。
func NewReplyCache(redisClient *redis.Client) ReplyCache {
	return &redisReplyCache{redisClient: redisClient}
}

// ReplyKey 返回幂等记录在 Redis 中的键。
func ReplyKey(conversationID, key string) string {
	return fmt.Sprintf("chat:idempotency:%s:%s", conversationID, key)
}

// Get 读取幂等记录，不存在时返回 false。
func (r *redisReplyCache) Get(ctx context.Context, conversationID, key string) (*CachedReply, bool, error) {
	jsonData, err := r.redisClient.Get(ctx, ReplyKey(conversationID, key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached reply: %w", err)
	}
	var reply CachedReply
	if err := json.Unmarshal([]byte(jsonData), &reply); err != nil {
		// 数据损坏：删除后按未命中处理
		_ = r.redisClient.Del(ctx, ReplyKey(conversationID, key)).Err()
		return nil, false, nil
	}
	return &reply, true, nil
}

// Put 写入幂等记录。
func (r *redisReplyCache) Put(ctx context.Context, conversationID, key string, reply CachedReply, ttl time.Duration) error {
	jsonData, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal cached reply: %w", err)
	}
	if err := r.redisClient.Set(ctx, ReplyKey(conversationID, key), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached reply: %w", err)
	}
	return nil
}
