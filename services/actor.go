package services

import "github.com/Shenoy-shank05/zoomoeats/entity"

// Actor is the authenticated caller of an ownership-checked operation.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }
