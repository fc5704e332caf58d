package specification

import "gorm.io/gorm"

// ByID filters by primary key. Works for numeric ids and text codes alike.
type ByID struct {
	ID interface{}
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}
