package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const submissionKeyPrefix = "moving:submission:"

// SubmissionGuard отсекает повторные отправки одной и той же заявки
// Заявка "занимается" через SET NX на время окна
type SubmissionGuard struct {
	rdb *redis.Client
}

// NewClient создает клиента Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrUnavailable, addr, err)
	}

	return rdb, nil
}

// NewSubmissionGuard создает guard поверх клиента Redis
func NewSubmissionGuard(rdb *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{rdb: rdb}
}

// Acquire пытается занять отпечаток заявки на ttl
// Возвращает false, если такая же заявка уже отправлялась в пределах окна
func (g *SubmissionGuard) Acquire(ctx context.Context, fingerprint string, ttl time.Duration) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, submissionKeyPrefix+fingerprint, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Acquire - setnx: %v", ErrUnavailable, err)
	}
	return ok, nil
}

// Release освобождает отпечаток (например, если создание заявки не удалось)
func (g *SubmissionGuard) Release(ctx context.Context, fingerprint string) error {
	if err := g.rdb.Del(ctx, submissionKeyPrefix+fingerprint).Err(); err != nil {
		return fmt.Errorf("%w: Release - del: %v", ErrUnavailable, err)
	}
	return nil
}

// Fingerprint отпечаток заявки: email, телефон, дата и адреса без учета регистра и пробелов по краям
func Fingerprint(email, phone, movingDate, fromAddress, toAddress string) string {
	parts := []string{email, phone, movingDate, fromAddress, toAddress}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Ping проверяет доступность Redis
func (g *SubmissionGuard) Ping(ctx context.Context) error {
	if err := g.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}
	return nil
}
