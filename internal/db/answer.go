package db

import "time"

type Answer struct {
	ID         uint   `gorm:"primaryKey"`
	RoundID    uint   `gorm:"index;not null;uniqueIndex:idx_answers_round_player"`
	PlayerID   uint   `gorm:"index;not null;uniqueIndex:idx_answers_round_player"`
	Nickname   string `gorm:"size:64;not null"`
	Text       string `gorm:"size:280;not null"`
	VotesCount int    `gorm:"not null;default:0"`
	EditCount  int    `gorm:"not null;default:0"`
	IsReady    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Votes     []Vote
}
