/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// RedisCache wraps a durable MessageStore (SQLStore or PostgresStore)
// with a Redis copy of recently-stored messages and a bounded local
// LRU. Store writes to the backing store first, then to the LRU and
// Redis. GetRange serves a single-message range (begin == end) from
// the local LRU when present and reads every other range from the
// backing store; the Redis copy is not read by this type.
type RedisCache struct {
	backing    MessageStore
	rdb        *redis.Client
	keyPrefix  string
	ttl        time.Duration
	hot        *lru.Cache[fixcore.SeqNum, []byte]
}

// NewRedisCache wraps backing with a Redis client and a bounded local
// LRU of the hottest sequence numbers, avoiding a network round trip
// entirely when a single recent message is re-sent.
func NewRedisCache(backing MessageStore, rdb *redis.Client, keyPrefix string, ttl time.Duration, localCacheSize int) (*RedisCache, error) {
	hot, err := lru.New[fixcore.SeqNum, []byte](localCacheSize)
	if err != nil {
		return nil, fmt.Errorf("store: lru cache init: %w", err)
	}
	return &RedisCache{backing: backing, rdb: rdb, keyPrefix: keyPrefix, ttl: ttl, hot: hot}, nil
}

func (c *RedisCache) redisKey(seq fixcore.SeqNum) string {
	return c.keyPrefix + ":msg:" + strconv.FormatUint(uint64(seq), 10)
}

func (c *RedisCache) Store(seq fixcore.SeqNum, raw []byte) error {
	if err := c.backing.Store(seq, raw); err != nil {
		return err
	}
	c.hot.Add(seq, raw)
	ctx := context.Background()
	if err := c.rdb.Set(ctx, c.redisKey(seq), raw, c.ttl).Err(); err != nil {
		// Redis is a cache, not the source of truth; a failed
		// write-behind does not fail the store operation since the
		// durable backend already has the message.
		return nil
	}
	return nil
}

func (c *RedisCache) GetRange(begin, end fixcore.SeqNum) ([][]byte, error) {
	if cached, ok := c.hot.Get(begin); ok && begin == end {
		return [][]byte{cached}, nil
	}
	return c.backing.GetRange(begin, end)
}

func (c *RedisCache) NextSenderSeq() (fixcore.SeqNum, error)         { return c.backing.NextSenderSeq() }
func (c *RedisCache) NextTargetSeq() (fixcore.SeqNum, error)         { return c.backing.NextTargetSeq() }
func (c *RedisCache) SetNextSenderSeq(seq fixcore.SeqNum) error      { return c.backing.SetNextSenderSeq(seq) }
func (c *RedisCache) SetNextTargetSeq(seq fixcore.SeqNum) error      { return c.backing.SetNextTargetSeq(seq) }
func (c *RedisCache) CreationTime() (fixcore.Timestamp, error)       { return c.backing.CreationTime() }

func (c *RedisCache) Reset() error {
	c.hot.Purge()
	return c.backing.Reset()
}

func (c *RedisCache) Refresh() error {
	return c.backing.Refresh()
}

var _ MessageStore = (*RedisCache)(nil)
