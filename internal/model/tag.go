package model

type Tag struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_tags_name"`
}

func (Tag) TableName() string {
	return "tags"
}

// HashtagCount 热门话题聚合行
type HashtagCount struct {
	Name  string `gorm:"column:name"`
	Count int64  `gorm:"column:count"`
}
