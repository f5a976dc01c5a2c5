package repository

import (
	"fmt"
	"time"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"gorm.io/gorm"
)

// complaintRepository implements the ComplaintRepository interface
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository instance
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// Create creates a new complaint in the database
func (r *complaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// GetByID retrieves a complaint by its ID
func (r *complaintRepository) GetByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.First(&complaint, id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// GetByIDWithUser retrieves a complaint with its reporter preloaded
func (r *complaintRepository) GetByIDWithUser(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.Preload("User").First(&complaint, id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List retrieves complaints matching the filter, newest first
func (r *complaintRepository) List(filter ComplaintFilter) ([]models.Complaint, error) {
	query := r.db.Model(&models.Complaint{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.IssueType != "" {
		query = query.Where("issue_type = ?", filter.IssueType)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var complaints []models.Complaint
	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// Update saves changes to an existing complaint
func (r *complaintRepository) Update(complaint *models.Complaint) error {
	return r.db.Save(complaint).Error
}

// Delete removes a complaint and cascades to its votes and comments so no
// orphaned rows reference the dead ID.
func (r *complaintRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete votes for complaint %d: %w", id, err)
		}
		if err := tx.Where("complaint_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments for complaint %d: %w", id, err)
		}
		return tx.Delete(&models.Complaint{}, id).Error
	})
}

// Count returns the total number of complaints
func (r *complaintRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of complaints with the given status
func (r *complaintRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountCreatedSince returns the number of complaints created at or after the
// given instant.
func (r *complaintRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// Recent returns the most recently created complaints with reporters
// preloaded, newest first.
func (r *complaintRepository) Recent(limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Preload("User").Order("created_at DESC").Limit(limit).Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent complaints: %w", err)
	}
	return complaints, nil
}

// RecentWithCoordinates returns the newest complaints that carry a full
// coordinate pair. Rows with either side NULL are excluded here rather than
// filtered by the caller.
func (r *complaintRepository) RecentWithCoordinates(limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").Limit(limit).Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get complaints with coordinates: %w", err)
	}
	return complaints, nil
}

// CreationTimes returns the raw creation timestamps of all complaints in
// ascending order. Calendar-day bucketing happens in the statistics package
// so the grouping works identically on MySQL and the SQLite test database.
func (r *complaintRepository) CreationTimes() ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(&models.Complaint{}).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint creation times: %w", err)
	}
	return times, nil
}
