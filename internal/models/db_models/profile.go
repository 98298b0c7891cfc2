package db_models

import (
	"fmt"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile is the stored user record, distinct from the external OAuth account.
// CreatedAt doubles as the join timestamp.
type Profile struct {
	BaseModel
	AccountID string `gorm:"uniqueIndex;not null"`
	Name      string
	Email     string `gorm:"index"`
	AvatarURL string
	Role      Role `gorm:"type:varchar(16);not null;default:'user'"`
}

func (p *Profile) BeforeSave(tx *gorm.DB) error {
	if !p.Role.Valid() {
		return fmt.Errorf("profile %s: unknown role %q", p.AccountID, p.Role)
	}
	return nil
}
