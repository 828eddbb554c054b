package model

// KV backs the generic key-value cache (generated-question caching).
type KV struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	ExpiresAt string `gorm:"column:expires_at;type:text"`
}

func (KV) TableName() string {
	return "kv"
}
