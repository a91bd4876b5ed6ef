package repository

import (
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationshipRepository 친구 관계 저장소
type RelationshipRepository interface {
	Create(rel *domain.Relationship) error
	FindByID(id uuid.UUID) (*domain.Relationship, error)
	FindBetween(a, b uuid.UUID) (*domain.Relationship, error)
	Accept(id, recipientID uuid.UUID) (bool, error)
	DeletePending(id, recipientID uuid.UUID) (bool, error)
	DeleteForParty(id, actorID uuid.UUID) (bool, error)
	ListForUser(userID uuid.UUID, status domain.RelationshipStatus) ([]*domain.Relationship, error)
	PendingIncoming(userID uuid.UUID) ([]*domain.Relationship, error)
	PendingOutgoing(userID uuid.UUID) ([]*domain.Relationship, error)
	FriendIDs(userID uuid.UUID) ([]uuid.UUID, error)
	RelatedUserIDs(userID uuid.UUID) ([]uuid.UUID, error)
}

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository 친구 관계 저장소 생성
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

// Create inserts rel; a second row for the same unordered pair fails with ErrConflict
func (r *relationshipRepository) Create(rel *domain.Relationship) error {
	err := r.db.Omit("Requester", "Recipient").Create(rel).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: relationship already exists", common.ErrConflict)
	}
	return err
}

func (r *relationshipRepository) FindByID(id uuid.UUID) (*domain.Relationship, error) {
	var rel domain.Relationship
	err := r.db.Where("id = ?", id).First(&rel).Error
	return &rel, err
}

// FindBetween looks up the pair in both orders
func (r *relationshipRepository) FindBetween(a, b uuid.UUID) (*domain.Relationship, error) {
	var rel domain.Relationship
	err := r.db.
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)", a, b, b, a).
		First(&rel).Error
	return &rel, err
}

// Accept flips a pending request addressed to recipientID. Returns false if nothing matched.
func (r *relationshipRepository) Accept(id, recipientID uuid.UUID) (bool, error) {
	result := r.db.Model(&domain.Relationship{}).
		Where("id = ? AND recipient_id = ? AND status = ?", id, recipientID, domain.RelationshipPending).
		Update("status", domain.RelationshipAccepted)
	return result.RowsAffected > 0, result.Error
}

// DeletePending removes a pending request addressed to recipientID
func (r *relationshipRepository) DeletePending(id, recipientID uuid.UUID) (bool, error) {
	result := r.db.
		Where("id = ? AND recipient_id = ? AND status = ?", id, recipientID, domain.RelationshipPending).
		Delete(&domain.Relationship{})
	return result.RowsAffected > 0, result.Error
}

// DeleteForParty removes the row in any status when actorID is one of the parties
func (r *relationshipRepository) DeleteForParty(id, actorID uuid.UUID) (bool, error) {
	result := r.db.
		Where("id = ? AND (requester_id = ? OR recipient_id = ?)", id, actorID, actorID).
		Delete(&domain.Relationship{})
	return result.RowsAffected > 0, result.Error
}

// ListForUser returns every row involving userID; an empty status means any
func (r *relationshipRepository) ListForUser(userID uuid.UUID, status domain.RelationshipStatus) ([]*domain.Relationship, error) {
	query := r.db.Where("requester_id = ? OR recipient_id = ?", userID, userID)
	if status != "" {
		query = r.db.Where("(requester_id = ? OR recipient_id = ?) AND status = ?", userID, userID, status)
	}

	var rels []*domain.Relationship
	err := query.Order("created_at DESC").Find(&rels).Error
	return rels, err
}

func (r *relationshipRepository) PendingIncoming(userID uuid.UUID) ([]*domain.Relationship, error) {
	var rels []*domain.Relationship
	err := r.db.Where("recipient_id = ? AND status = ?", userID, domain.RelationshipPending).
		Order("created_at DESC").
		Find(&rels).Error
	return rels, err
}

func (r *relationshipRepository) PendingOutgoing(userID uuid.UUID) ([]*domain.Relationship, error) {
	var rels []*domain.Relationship
	err := r.db.Where("requester_id = ? AND status = ?", userID, domain.RelationshipPending).
		Order("created_at DESC").
		Find(&rels).Error
	return rels, err
}

// FriendIDs returns the other party of every accepted relationship
func (r *relationshipRepository) FriendIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	rels, err := r.ListForUser(userID, domain.RelationshipAccepted)
	if err != nil {
		return nil, err
	}
	return otherParties(rels, userID), nil
}

// RelatedUserIDs returns everyone sharing a relationship row with userID, any status
func (r *relationshipRepository) RelatedUserIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	rels, err := r.ListForUser(userID, "")
	if err != nil {
		return nil, err
	}
	return otherParties(rels, userID), nil
}

func otherParties(rels []*domain.Relationship, userID uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rels))
	ids := make([]uuid.UUID, 0, len(rels))
	for _, rel := range rels {
		other := rel.OtherParty(userID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids
}
