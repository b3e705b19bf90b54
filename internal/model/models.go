package model

// All 需要迁移的全部关系表, 顺序满足外键依赖
func All() []any {
	return []any{
		&User{},
		&Post{},
		&Like{},
		&ShareLog{},
		&Tag{},
		&PostTag{},
		&Session{},
	}
}
