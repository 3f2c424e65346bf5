package mongo

import "time"

// RawSnapshot 上游原始报文归档
// 排查口径争议时可以回放当时的抓取结果，业务读路径不依赖它
type RawSnapshot struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    uint64    `bson:"user_id" json:"userId"`
	Platform  string    `bson:"platform" json:"platform"`
	Handle    string    `bson:"handle" json:"handle"`
	Payload   string    `bson:"payload" json:"payload"` // 原始 JSON 报文
	FetchedAt time.Time `bson:"fetched_at" json:"fetchedAt"`
}
