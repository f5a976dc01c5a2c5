package repository

import (
	"fmt"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment in the database
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListByComplaint retrieves the comments on a complaint, newest first, with
// authors preloaded for display.
func (r *commentRepository) ListByComplaint(complaintID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("complaint_id = ?", complaintID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for complaint %d: %w", complaintID, err)
	}
	return comments, nil
}

// CountByComplaint returns the number of comments on a complaint
func (r *commentRepository) CountByComplaint(complaintID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("complaint_id = ?", complaintID).Count(&count).Error
	return count, err
}
