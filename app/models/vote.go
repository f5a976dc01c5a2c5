package models

import (
	"time"
)

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote records a single user's reaction to a complaint. The composite unique
// index is the source of truth for the one-vote-per-(user, complaint)
// invariant; application-level pre-checks are only an optimization on top.
// Votes carry no soft-delete column so the index never holds ghost pairs.
type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_votes_user_complaint" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ComplaintID uint      `gorm:"not null;uniqueIndex:idx_votes_user_complaint" json:"complaint_id"`
	VoteType    string    `gorm:"type:varchar(10);not null" json:"vote_type" validate:"oneof=upvote downvote"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsValidVoteType reports whether t is one of the two accepted vote types.
func IsValidVoteType(t string) bool {
	return t == VoteUp || t == VoteDown
}
