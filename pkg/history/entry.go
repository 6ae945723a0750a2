package history

import "gorm.io/plugin/soft_delete"

// Entry is one recorded REPL chunk.
type Entry struct {
	ID     int64  `gorm:"primaryKey"`
	Source string `gorm:"not null"`
	// Digest is the fnv1a-64 hash of Source, hex encoded.
	Digest    string `gorm:"index:idx_digest"`
	CreatedAt int64  `gorm:"autoCreateTime:nano"`
	// 0 live, 1 trimmed.
	Deleted soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (Entry) TableName() string {
	return "history_entry"
}
