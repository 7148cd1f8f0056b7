package model

import "time"

type Shop struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Shop) String() string { return s.Name }
