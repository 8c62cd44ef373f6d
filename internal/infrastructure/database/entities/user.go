package entities

import "time"

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// User represents the persisted user profile record.
type User struct {
	ID                         string  `gorm:"primaryKey;size:64"`
	Email                      string  `gorm:"uniqueIndex;size:256"`
	Name                       string  `gorm:"size:100"`
	PreferredWorkingHourPerDay float64 `gorm:"default:0"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time

	// Relations
	TimeEntries []TimeEntry `gorm:"foreignKey:OwnerID"`
}
