package models

import (
	"literasi-backend/internal/docstore"
)

// Child is a registered learner. Only the reward service mutates level, xp,
// stars and badges after registration.
type Child struct {
	ID     docstore.ID `json:"id,omitzero"`
	Name   string      `json:"name"`
	Age    int         `json:"age"`
	Avatar *string     `json:"avatar"`
	Level  int         `json:"level"`
	XP     int         `json:"xp"`
	Stars  int         `json:"stars"`
	Badges []string    `json:"badges"`
}

// NewChild returns a profile with the starting progression state.
func NewChild(name string, age int, avatar *string) *Child {
	return &Child{
		Name:   name,
		Age:    age,
		Avatar: avatar,
		Level:  1,
		XP:     0,
		Stars:  0,
		Badges: []string{},
	}
}

func (c *Child) HasBadge(code string) bool {
	for _, b := range c.Badges {
		if b == code {
			return true
		}
	}
	return false
}

// AddBadge appends code unless the child already holds it. It reports whether
// the badge was new.
func (c *Child) AddBadge(code string) bool {
	if c.HasBadge(code) {
		return false
	}
	c.Badges = append(c.Badges, code)
	return true
}

type CreateChildRequest struct {
	Name   string  `json:"name" validate:"required"`
	Age    int     `json:"age" validate:"required,min=3,max=10"`
	Avatar *string `json:"avatar"`
}
