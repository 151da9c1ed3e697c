package db

import "time"

type GamePlayer struct {
	ID        uint   `gorm:"primaryKey"`
	GameID    uint   `gorm:"index;not null;uniqueIndex:idx_game_players_game_nickname"`
	Nickname  string `gorm:"size:64;not null;uniqueIndex:idx_game_players_game_nickname"`
	Score     int    `gorm:"not null;default:0"`
	IsActive  bool   `gorm:"not null;default:true"`
	IsCoHost  bool   `gorm:"not null;default:false"`
	IsBot     bool   `gorm:"not null;default:false"`
	KickedBy  *uint  `gorm:"index"`
	BannedBy  *uint  `gorm:"index"`
	BanReason string `gorm:"size:256;not null;default:''"`

	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
