package database

import (
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Blog struct {
	ID        string
	Title     string
	Author    string
	Content   string
	CreatedAt time.Time
}
