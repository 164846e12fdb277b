// Package ratelimiter は、リクエストなどの操作の頻度を制限します。
package ratelimiter

import (
	"sync"
	"time"
)

// bucket は1つのキー（例: クライアントIP）の現在のウィンドウを保持します。
type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter はキーごとの固定ウィンドウレートリミッターです。
// ログイン等の認証エンドポイントへの総当たり攻撃を抑制するために使用します。
type Limiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	buckets  map[string]*bucket
}

// NewLimiter は新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		buckets:  make(map[string]*bucket),
	}
}

// Allow はキーに対する操作が上限内かを報告します。
// リクエスト処理中にブロックしてはいけないため、待機せずに即座に判定します。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.interval {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	b.count++
	return b.count <= l.limit
}

// Reset はキーのカウントを破棄します（テスト用）。
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}
