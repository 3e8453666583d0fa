// Package cart records picked menu items durably. The list is append-only
// under the MenuItems key: no dedup, no removal, matching what the shop
// front writes.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/n1kyfn/restaurant/pkg/types"
)

const storageKey = "MenuItems"

// CartItem is the pair the persistence interface stores per selection.
type CartItem struct {
	Title string      `json:"title"`
	Price types.Price `json:"price"`
}

type Storage interface {
	GetItems(cartId string) ([]CartItem, error)
	AddItem(cartId string, item CartItem) ([]CartItem, error)
}

type DiskStorage struct {
	Path string
	mu   sync.Mutex
}

func NewDiskStorage(path string) *DiskStorage {
	return &DiskStorage{Path: path}
}

func (s *DiskStorage) cartPath(cartId string) string {
	folder := "0"
	if len(cartId) >= 2 {
		folder = cartId[:2]
	}
	return filepath.Join(s.Path, storageKey, folder, cartId+".json")
}

func (s *DiskStorage) GetItems(cartId string) ([]CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readItems(cartId)
}

func (s *DiskStorage) readItems(cartId string) ([]CartItem, error) {
	file, err := os.Open(s.cartPath(cartId))
	if err != nil {
		if os.IsNotExist(err) {
			return []CartItem{}, nil
		}
		return nil, err
	}
	defer file.Close()
	var items []CartItem
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DiskStorage) AddItem(cartId string, item CartItem) ([]CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.readItems(cartId)
	if err != nil {
		return nil, err
	}
	items = append(items, item)

	path := s.cartPath(cartId)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(items); err != nil {
		return nil, err
	}
	return items, nil
}

// RedisStorage keeps each cart as a redis list, one JSON entry per
// selection.
type RedisStorage struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStorage(addr, password string, db int) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ctx: context.Background(),
	}
}

func redisKey(cartId string) string {
	return fmt.Sprintf("%s:%s", storageKey, cartId)
}

func (s *RedisStorage) GetItems(cartId string) ([]CartItem, error) {
	entries, err := s.client.LRange(s.ctx, redisKey(cartId), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	items := make([]CartItem, 0, len(entries))
	for _, entry := range entries {
		var item CartItem
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *RedisStorage) AddItem(cartId string, item CartItem) ([]CartItem, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	if err := s.client.RPush(s.ctx, redisKey(cartId), data).Err(); err != nil {
		return nil, err
	}
	return s.GetItems(cartId)
}

func (s *RedisStorage) Close() {
	s.client.Close()
}
