package models

// Race is a competition.
type Race struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"_id"`
	RID         string `gorm:"column:rid;size:32;uniqueIndex;not null" json:"rid" validate:"required"`
	Title       string `gorm:"column:title;size:128;not null" json:"title" validate:"required"`
	Sponsor     string `gorm:"column:sponsor;size:128" json:"sponsor" validate:"required"`
	Year        string `gorm:"column:year;size:8" json:"year" validate:"required"`
	Level       string `gorm:"column:level;size:32" json:"level" validate:"required"`
	Location    string `gorm:"column:location;size:128" json:"location" validate:"required"`
	Date        int64  `gorm:"column:date" json:"date" validate:"required"`
	Description string `gorm:"column:description;type:text" json:"description" validate:"required"`
}

// TableName overrides the table name.
func (Race) TableName() string {
	return "race"
}

// Columns lists the race columns a client may write.
func (Race) Columns() []string {
	return []string{"rid", "title", "sponsor", "year", "level", "location", "date", "description"}
}

// Record is a participation of an account in a race.
type Record struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"_id"`
	RID     string `gorm:"column:rid;size:32;index;not null" json:"rid" validate:"required"`
	Account string `gorm:"column:account;size:32;index;not null" json:"account" validate:"required"`
	Teacher string `gorm:"column:teacher;size:32;not null" json:"teacher" validate:"required"`
	Score   string `gorm:"column:score;size:32" json:"score"`
}

// TableName overrides the table name.
func (Record) TableName() string {
	return "record"
}

// Columns lists the record columns a client may write.
func (Record) Columns() []string {
	return []string{"rid", "account", "teacher", "score"}
}
