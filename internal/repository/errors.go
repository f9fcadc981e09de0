package repository

import "errors"

// ErrConversationNotFound 表示消息引用了不存在的会话。
var ErrConversationNotFound = errors.New("conversation not found")
