package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zhoukk/slidegen/pkg/deck"
	"github.com/zhoukk/slidegen/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheMaxSize 缓存条目数上限默认值
const DefaultCacheMaxSize = 100

type cacheKey struct {
	topic     string // 已转为小写，仅做大小写归一
	numSlides int
}

// ContentProducer 在缓存未命中时生成内容树
type ContentProducer func(ctx context.Context, topic string, numSlides int) (*deck.ContentTree, error)

// ContentCache 是有界的内容树缓存，按插入顺序淘汰（FIFO）。
// 命中不会刷新条目的新旧程度；生成失败的结果不缓存，
// 相同请求下次仍会调用生成方
type ContentCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[cacheKey]*deck.ContentTree
	order   []cacheKey // 插入顺序

	group singleflight.Group // 同键并发未命中只触发一次生成
}

// NewContentCache 创建内容缓存，maxSize小于等于0时使用默认上限
func NewContentCache(maxSize int) *ContentCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheMaxSize
	}
	return &ContentCache{
		maxSize: maxSize,
		entries: make(map[cacheKey]*deck.ContentTree),
	}
}

// GetOrCreate 查询缓存，未命中时调用produce生成并缓存成功结果。
// 缓存的内容树视为不可变，调用方不应修改
func (c *ContentCache) GetOrCreate(ctx context.Context, topic string, numSlides int, produce ContentProducer) (*deck.ContentTree, error) {
	key := cacheKey{topic: strings.ToLower(topic), numSlides: numSlides}

	c.mu.Lock()
	if tree, ok := c.entries[key]; ok {
		c.mu.Unlock()
		logger.Info("内容缓存命中", logger.F("topic", topic))
		return tree, nil
	}
	c.mu.Unlock()

	logger.Info("内容缓存未命中，调用生成服务", logger.F("topic", topic))

	v, err, _ := c.group.Do(fmt.Sprintf("%s|%d", key.topic, key.numSlides), func() (interface{}, error) {
		// 等待合并的请求可能在这里拿到刚写入的结果
		c.mu.Lock()
		if tree, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return tree, nil
		}
		c.mu.Unlock()

		tree, err := produce(ctx, topic, numSlides)
		if err != nil {
			// 失败结果不缓存
			return nil, err
		}

		c.insert(key, tree)
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*deck.ContentTree), nil
}

// Len 返回当前缓存条目数
func (c *ContentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ContentCache) insert(key cacheKey, tree *deck.ContentTree) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = tree

	if len(c.entries) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		logger.Info("缓存达到上限，移除最早插入的条目", logger.F("topic", oldest.topic))
	}
}
