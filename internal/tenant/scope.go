package tenant

import "gorm.io/gorm"

// ForApartment returns a GORM scope that filters by apartment join code.
// Every tenant-owned query goes through this so records never leak across
// apartments.
func ForApartment(apartmentCode string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("apartment_code = ?", apartmentCode)
	}
}
