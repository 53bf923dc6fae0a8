package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every repository query on a
// tenant-owned table goes through this.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// BranchScope additionally restricts to one branch within the company.
func BranchScope(companyID, branchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("company_id = ?", companyID)
		if branchID != "" {
			db = db.Where("branch_id = ?", branchID)
		}
		return db
	}
}
