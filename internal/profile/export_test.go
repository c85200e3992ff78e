package profile

import "gorm.io/gorm"

// NewUnmigratedGormRepository skips AutoMigrate for databases whose schema
// the test creates by hand.
func NewUnmigratedGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}
