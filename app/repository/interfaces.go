package repository

import (
	"time"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"gorm.io/gorm"
)

// ComplaintFilter narrows List results. Zero values mean "no filter".
type ComplaintFilter struct {
	Status    string
	Priority  string
	IssueType string
	UserID    uint
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	CountCitizens() (int64, error)
}

// ComplaintRepository defines the interface for complaint-related database operations
type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	GetByID(id uint) (*models.Complaint, error)
	GetByIDWithUser(id uint) (*models.Complaint, error)
	List(filter ComplaintFilter) ([]models.Complaint, error)
	Update(complaint *models.Complaint) error
	// Delete removes the complaint together with its votes and comments in
	// one transaction.
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	Recent(limit int) ([]models.Complaint, error)
	RecentWithCoordinates(limit int) ([]models.Complaint, error)
	CreationTimes() ([]time.Time, error)
}

// VoteRepository defines the interface for vote-related database operations
type VoteRepository interface {
	Create(vote *models.Vote) error
	HasVoted(userID, complaintID uint) (bool, error)
	GetByUserAndComplaint(userID, complaintID uint) (*models.Vote, error)
	CountByComplaint(complaintID uint, voteType string) (int64, error)
}

// CommentRepository defines the interface for comment-related database operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByComplaint(complaintID uint) ([]models.Comment, error)
	CountByComplaint(complaintID uint) (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User      UserRepository
	Complaint ComplaintRepository
	Vote      VoteRepository
	Comment   CommentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Complaint: NewComplaintRepository(db),
		Vote:      NewVoteRepository(db),
		Comment:   NewCommentRepository(db),
	}
}
