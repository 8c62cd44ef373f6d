package entities

import "time"

// TableName specifies the table name for Account.
func (Account) TableName() string {
	return "accounts"
}

// Account represents the persisted identity record: login credentials for a
// user. The password is stored as a bcrypt hash, never in clear.
type Account struct {
	ID           string `gorm:"primaryKey;size:64"`
	Email        string `gorm:"uniqueIndex;size:256"`
	Name         string `gorm:"size:100"`
	PasswordHash string `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relations
	Roles []AccountRole `gorm:"foreignKey:AccountID"`
}

// TableName specifies the table name for AccountRole.
func (AccountRole) TableName() string {
	return "account_roles"
}

// AccountRole represents one role assignment for an account.
type AccountRole struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID string `gorm:"index:idx_account_role,unique;size:64"`
	Role      string `gorm:"index:idx_account_role,unique;size:32"`
	CreatedAt time.Time
}
