package migration

import (
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"gorm.io/gorm"
)

// Models returns every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Wishlist{},
		&domain.Item{},
		&domain.Relationship{},
		&domain.SavedWishlist{},
	}
}

// Run executes AutoMigrate for all tables.
// 테이블이 없으면 생성하고, 있으면 누락된 컬럼/인덱스만 추가
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Rollback drops all tables in reverse dependency order
func Rollback(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop %T: %w", models[i], err)
		}
	}
	return nil
}

// VerifyReport row counts and invariant violations found by Verify
type VerifyReport struct {
	Counts                map[string]int64
	BothClaimIdentities   int64
	ClaimWithoutTimestamp int64
	DuplicatePairs        int64
	SelfRelationships     int64
}

// OK reports whether no invariant violation was found
func (r *VerifyReport) OK() bool {
	return r.BothClaimIdentities == 0 && r.ClaimWithoutTimestamp == 0 &&
		r.DuplicatePairs == 0 && r.SelfRelationships == 0
}

// Verify counts rows and checks the claim and relationship invariants
func Verify(db *gorm.DB) (*VerifyReport, error) {
	report := &VerifyReport{Counts: make(map[string]int64)}

	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		var count int64
		if err := db.Model(m).Count(&count).Error; err != nil {
			return nil, err
		}
		report.Counts[stmt.Schema.Table] = count
	}

	if err := db.Model(&domain.Item{}).
		Where("claimed_by_user_id IS NOT NULL AND claimed_by_name IS NOT NULL").
		Count(&report.BothClaimIdentities).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Item{}).
		Where("(claimed_by_user_id IS NOT NULL OR claimed_by_name IS NOT NULL) AND claimed_at IS NULL").
		Count(&report.ClaimWithoutTimestamp).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Relationship{}).
		Where("requester_id = recipient_id").
		Count(&report.SelfRelationships).Error; err != nil {
		return nil, err
	}

	// pairs stored in both directions
	if err := db.Table("user_relationships AS a").
		Joins("JOIN user_relationships AS b ON a.requester_id = b.recipient_id AND a.recipient_id = b.requester_id AND a.id < b.id").
		Count(&report.DuplicatePairs).Error; err != nil {
		return nil, err
	}

	return report, nil
}
