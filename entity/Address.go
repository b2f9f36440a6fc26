package entity

import (
	"strings"

	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null" json:"userId"`
	User       User   `json:"-"`
	Label      string `json:"label"`
	Line1      string `gorm:"not null" json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Snapshot renders the address as the single line stored on an order.
func (a Address) Snapshot() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
