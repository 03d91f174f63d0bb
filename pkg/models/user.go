package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `bun:",notnull" json:"username"`
	Email        string    `bun:",notnull" json:"email"`
	PasswordHash string    `bun:",notnull" json:"-"`
}
