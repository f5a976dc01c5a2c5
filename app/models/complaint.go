package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	StatusReceived = "received"
	StatusInReview = "in_review"
	StatusResolved = "resolved"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	// DefaultAssignee is the authority a new complaint is routed to until an
	// admin reassigns it.
	DefaultAssignee = "Municipal Authority"
)

type Complaint struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	IssueType   string         `gorm:"type:varchar(100);not null" json:"issueType" validate:"required,max=100"`
	Priority    string         `gorm:"type:varchar(20);default:'Medium'" json:"priority" validate:"oneof=Low Medium High"`
	Description string         `gorm:"type:text;not null" json:"description" validate:"required"`
	Address     string         `gorm:"type:varchar(255);not null" json:"address" validate:"required,max=255"`
	Landmark    string         `gorm:"type:varchar(255)" json:"landmark,omitempty"`
	Photo       string         `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	AssignedTo  string         `gorm:"type:varchar(150);default:'Municipal Authority'" json:"assigned_to"`
	Status      string         `gorm:"type:varchar(20);default:'received';index" json:"status" validate:"oneof=received in_review resolved"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Complaint) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// HasCoordinates reports whether both latitude and longitude are stored.
// Records missing either value never carry a half-filled pair.
func (c *Complaint) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// NormalizePriority maps raw submission input onto the three stored values.
// "Urgent" collapses into High; anything unrecognized becomes Medium.
func NormalizePriority(priority string) string {
	switch priority {
	case "Urgent":
		return PriorityHigh
	case PriorityLow, PriorityMedium, PriorityHigh:
		return priority
	default:
		return PriorityMedium
	}
}

// IsValidStatus reports whether s is one of the three complaint statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusInReview, StatusResolved:
		return true
	}
	return false
}

// StatusLabel converts a stored status into its display label.
// Unknown values pass through unchanged.
func StatusLabel(status string) string {
	switch status {
	case StatusReceived:
		return "Pending"
	case StatusInReview:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	default:
		return status
	}
}

// PriorityLabel returns the display priority, defaulting to Medium when the
// stored value is empty.
func PriorityLabel(priority string) string {
	if priority == "" {
		return PriorityMedium
	}
	return priority
}
