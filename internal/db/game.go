package db

import "time"

type Game struct {
	ID           uint   `gorm:"primaryKey"`
	JoinCode     string `gorm:"size:12;uniqueIndex;not null"`
	Status       string `gorm:"size:32;not null"`
	HostPlayerID uint   `gorm:"not null;default:0"`

	TotalRounds       int    `gorm:"not null;default:5"`
	AnswerSeconds     int    `gorm:"not null;default:60"`
	VoteSeconds       int    `gorm:"not null;default:30"`
	MinPlayers        int    `gorm:"not null;default:2"`
	MaxPlayers        int    `gorm:"not null;default:8"`
	AcronymMin        int    `gorm:"not null;default:3"`
	AcronymMax        int    `gorm:"not null;default:5"`
	BetweenSeconds    int    `gorm:"not null;default:8"`
	ExcludedLetters   string `gorm:"size:26;not null;default:''"`
	MaxEdits          int    `gorm:"not null;default:0"`
	MaxVoteChanges    int    `gorm:"not null;default:0"`
	AllowReadyCheck   bool   `gorm:"not null;default:true"`
	Visibility        string `gorm:"size:16;not null;default:'public'"`
	PasswordHash      string `gorm:"size:256;not null;default:''"`

	CurrentRound    int    `gorm:"not null;default:0"`
	EndReason       string `gorm:"size:32;not null;default:''"`
	StartedAt       *time.Time
	FinishedAt      *time.Time
	DurationSeconds int `gorm:"not null;default:0"`
	LobbyWarningAt  *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Players   []GamePlayer
	Rounds    []Round
	Events    []Event
}
