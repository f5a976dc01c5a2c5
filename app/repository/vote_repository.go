package repository

import (
	"errors"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"gorm.io/gorm"
)

// voteRepository implements the VoteRepository interface
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository instance
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Create inserts a vote. The (user_id, complaint_id) unique index rejects a
// second vote for the same pair; callers should translate
// gorm.ErrDuplicatedKey into a conflict response.
func (r *voteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

// HasVoted reports whether the user already voted on the complaint
func (r *voteRepository) HasVoted(userID, complaintID uint) (bool, error) {
	_, err := r.GetByUserAndComplaint(userID, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetByUserAndComplaint retrieves the vote a user cast on a complaint
func (r *voteRepository) GetByUserAndComplaint(userID, complaintID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("user_id = ? AND complaint_id = ?", userID, complaintID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountByComplaint returns the number of votes of the given type on a complaint
func (r *voteRepository) CountByComplaint(complaintID uint, voteType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("complaint_id = ? AND vote_type = ?", complaintID, voteType).
		Count(&count).Error
	return count, err
}
