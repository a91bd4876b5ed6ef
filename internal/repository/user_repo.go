package repository

import (
	"strings"

	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository user data access
type UserRepository interface {
	FindByID(id uuid.UUID) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByIDs(ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)
	FindAll(page, limit int) ([]*domain.User, int64, error)
	Create(user *domain.User) error
	Update(user *domain.User) error
	Delete(id uuid.UUID) error
	SearchCandidates(query string, excludeIDs []uuid.UUID, limit int) ([]*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

// FindByIDs returns the users keyed by id; missing ids are simply absent
func (r *userRepository) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	result := make(map[uuid.UUID]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []*domain.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (r *userRepository) FindAll(page, limit int) ([]*domain.User, int64, error) {
	var users []*domain.User
	var total int64

	query := r.db.Model(&domain.User{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

// Delete removes the user with everything they own.
// Claims the user holds on other people's items are released.
func (r *userRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Item{}).
			Where("claimed_by_user_id = ?", id).
			Updates(domain.Unclaimed().Columns()).Error; err != nil {
			return err
		}

		ownedWishlists := tx.Model(&domain.Wishlist{}).Select("id").Where("user_id = ?", id)
		steps := []struct {
			model interface{}
			query string
			args  []interface{}
		}{
			{&domain.SavedWishlist{}, "user_id = ? OR wishlist_id IN (?)", []interface{}{id, ownedWishlists}},
			{&domain.Relationship{}, "requester_id = ? OR recipient_id = ?", []interface{}{id, id}},
			{&domain.Item{}, "user_id = ?", []interface{}{id}},
			{&domain.Wishlist{}, "user_id = ?", []interface{}{id}},
		}
		for _, step := range steps {
			if err := tx.Where(step.query, step.args...).Delete(step.model).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&domain.User{}).Error
	})
}

// searchRankSQL mirrors domain.SearchRank so that a capped query keeps the best-ranked rows.
// The name tier uses the display name (name, else username).
const searchRankSQL = `CASE
	WHEN LOWER(username) = ? THEN 0
	WHEN LOWER(username) LIKE ? ESCAPE '!' THEN 1
	WHEN LOWER(CASE WHEN name <> '' THEN name ELSE username END) LIKE ? ESCAPE '!' THEN 2
	WHEN LOWER(username) LIKE ? ESCAPE '!' THEN 3
	ELSE 4
END, LOWER(username)`

// SearchCandidates returns active users whose handle or name contains query
// (case-insensitive), skipping excludeIDs, best search rank first.
func (r *userRepository) SearchCandidates(query string, excludeIDs []uuid.UUID, limit int) ([]*domain.User, error) {
	exact := strings.ToLower(query)
	prefix := prefixPattern(query)
	pattern := likePattern(query)

	q := r.db.Model(&domain.User{}).
		Where("is_active = ?", true).
		Where("(LOWER(username) LIKE ? ESCAPE '!' OR LOWER(name) LIKE ? ESCAPE '!')", pattern, pattern)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var users []*domain.User
	err := q.Clauses(clause.OrderBy{Expression: clause.Expr{
		SQL:                searchRankSQL,
		Vars:               []interface{}{exact, prefix, prefix, pattern},
		WithoutParentheses: true,
	}}).Limit(limit).Find(&users).Error
	return users, err
}
