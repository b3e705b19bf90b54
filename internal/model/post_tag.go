package model

type PostTag struct {
	PostID uint64 `gorm:"primaryKey"`
	TagID  uint64 `gorm:"primaryKey;index:idx_post_tags_tag_id"`

	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Tag  *Tag  `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
