package model

// Test is the reference entity a result is submitted against. Results embed
// an immutable snapshot of these fields at submission time, so editing or
// deleting a test never corrupts historical results.
type Test struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Topic       string `gorm:"size:100" json:"topic"`
	SubTopic    string `gorm:"size:100" json:"subTopic"`
	Type        string `gorm:"size:50" json:"type"`
	Difficulty  string `gorm:"size:50" json:"difficulty"`
	Description string `gorm:"type:text" json:"description"`
	CreatorID   uint   `gorm:"index" json:"creatorId"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
}

func (Test) TableName() string {
	return "tests"
}

// Snapshot copies the metadata a result keeps for itself.
func (t *Test) Snapshot() TestSnapshot {
	return TestSnapshot{
		TestID:     t.ID,
		Title:      t.Title,
		Topic:      t.Topic,
		SubTopic:   t.SubTopic,
		Type:       t.Type,
		Difficulty: t.Difficulty,
	}
}
