package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an API user with a bcrypt-hashed password, keyed by email.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Email       string    `bun:"email,notnull,unique" json:"email"`
	Name        string    `bun:"name,notnull" json:"name"`
	Password    string    `bun:"password,notnull" json:"-"`
	Provider    string    `bun:"provider,notnull,default:'credentials'" json:"provider"`
	AgeVerified bool      `bun:"age_verified,notnull,default:false" json:"ageVerified"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
