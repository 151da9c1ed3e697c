package db

import "time"

type Vote struct {
	ID          uint   `gorm:"primaryKey"`
	AnswerID    uint   `gorm:"index;not null;uniqueIndex:idx_votes_answer_voter"`
	VoterID     uint   `gorm:"index;not null;uniqueIndex:idx_votes_answer_voter"`
	Nickname    string `gorm:"size:64;not null"`
	ChangeCount int    `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
