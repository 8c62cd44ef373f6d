package entities

import "time"

// TableName specifies the table name for TimeEntry.
func (TimeEntry) TableName() string {
	return "time_entries"
}

// TimeEntry represents the persisted time entry record.
type TimeEntry struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Date      time.Time `gorm:"index:idx_time_entry_date"`
	Note      string    `gorm:"size:300"`
	Duration  float64   `gorm:"default:0"`
	OwnerID   string    `gorm:"index:idx_time_entry_owner;size:64"`
	Owner     *User     `gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
