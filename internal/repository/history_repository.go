package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"medi-ai-go/internal/model"
)

// HistoryRepository 定义了用户历史查询记录的操作接口。
type HistoryRepository interface {
	AppendQuery(ctx context.Context, userID string, record model.QueryRecord) error
	GetRecentQueries(ctx context.Context, userID string, limit int) ([]model.QueryRecord, error)
}

// 历史记录保留最近 20 条，7 天后过期。
const (
	maxHistoryEntries = 20
	historyTTL        = 7 * 24 * time.Hour
)

type redisHistoryRepository struct {
	redisClient *redis.Client
}

// NewHistoryRepository 创建一个新的 HistoryRepository 实例。
func NewHistoryRepository(redisClient *redis.Client) HistoryRepository {
	return &redisHistoryRepository{redisClient: redisClient}
}

func historyKey(userID string) string {
	return fmt.Sprintf("user:%s:queries", userID)
}

// AppendQuery 向用户的历史记录追加一条查询，并裁剪到最近 20 条。
func (r *redisHistoryRepository) AppendQuery(ctx context.Context, userID string, record model.QueryRecord) error {
	records, err := r.GetRecentQueries(ctx, userID, maxHistoryEntries)
	if err != nil {
		return err
	}
	records = append(records, record)
	if len(records) > maxHistoryEntries {
		records = records[len(records)-maxHistoryEntries:]
	}
	jsonData, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal query history: %w", err)
	}
	if err := r.redisClient.Set(ctx, historyKey(userID), jsonData, historyTTL).Err(); err != nil {
		return fmt.Errorf("failed to set query history: %w", err)
	}
	return nil
}

// GetRecentQueries 从 Redis 获取用户最近的查询记录，最多 limit 条。
func (r *redisHistoryRepository) GetRecentQueries(ctx context.Context, userID string, limit int) ([]model.QueryRecord, error) {
	jsonData, err := r.redisClient.Get(ctx, historyKey(userID)).Result()
	if err == redis.Nil {
		return []model.QueryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get query history: %w", err)
	}
	var records []model.QueryRecord
	if err := json.Unmarshal([]byte(jsonData), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal query history: %w", err)
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}
