package db

import "time"

type Round struct {
	ID             uint   `gorm:"primaryKey"`
	GameID         uint   `gorm:"index;not null;uniqueIndex:idx_rounds_game_number"`
	Number         int    `gorm:"not null;uniqueIndex:idx_rounds_game_number"`
	Acronym        string `gorm:"size:8;not null"`
	Status         string `gorm:"size:32;not null"`
	AnswerDeadline *time.Time
	VoteDeadline   *time.Time
	GraceCount     int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Answers   []Answer
}
