package redis

import (
	"context"
	"time"
)

const denylistPrefix = "auth:denylist:"

// DenyToken 登出时按 JTI 拉黑 Token，TTL 对齐 Token 剩余有效期
func DenyToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

// IsTokenDenied 检查 Token 是否已被拉黑
func IsTokenDenied(ctx context.Context, jti string) (bool, error) {
	n, err := Client.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
