package model

import "time"

// QueryRecord 代表存储在 Redis 中的单条历史查询。
type QueryRecord struct {
	Query     string    `json:"query"`
	QueryType string    `json:"queryType"`
	Timestamp time.Time `json:"timestamp"`
}
