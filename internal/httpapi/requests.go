package httpapi

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"acroparty/internal/game"
)

// registerValidators installs the joincode rule: six characters from the
// code alphabet, which drops lookalikes (no I, O, 0, 1).
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("joincode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 6 {
			return false
		}
		for _, r := range code {
			switch {
			case r >= 'A' && r <= 'Z' && r != 'I' && r != 'O':
			case r >= '2' && r <= '9':
			default:
				return false
			}
		}
		return true
	})
}

type createGameRequest struct {
	Nickname string           `json:"nickname" binding:"required,max=20"`
	Password string           `json:"password" binding:"max=64"`
	Settings *settingsPayload `json:"settings"`
}

type settingsPayload struct {
	Rounds          *int    `json:"rounds" binding:"omitempty,min=1,max=20"`
	AnswerSeconds   *int    `json:"answer_seconds" binding:"omitempty,min=15,max=300"`
	VoteSeconds     *int    `json:"vote_seconds" binding:"omitempty,min=10,max=120"`
	MinPlayers      *int    `json:"min_players" binding:"omitempty,min=2,max=16"`
	MaxPlayers      *int    `json:"max_players" binding:"omitempty,min=2,max=16"`
	AcronymMin      *int    `json:"acronym_min" binding:"omitempty,min=1,max=6"`
	AcronymMax      *int    `json:"acronym_max" binding:"omitempty,min=1,max=6"`
	BetweenSeconds  *int    `json:"between_seconds" binding:"omitempty,min=3,max=120"`
	ExcludedLetters *string `json:"excluded_letters" binding:"omitempty,max=26"`
	MaxEdits        *int    `json:"max_edits" binding:"omitempty,min=0,max=20"`
	MaxVoteChanges  *int    `json:"max_vote_changes" binding:"omitempty,min=0,max=20"`
	AllowReadyCheck *bool   `json:"allow_ready_check"`
	Visibility      *string `json:"visibility" binding:"omitempty,oneof=public private"`
}

func (r *createGameRequest) apply(settings *game.Settings) {
	p := r.Settings
	if p == nil {
		return
	}
	if p.Rounds != nil {
		settings.Rounds = *p.Rounds
	}
	if p.AnswerSeconds != nil {
		settings.AnswerSeconds = *p.AnswerSeconds
	}
	if p.VoteSeconds != nil {
		settings.VoteSeconds = *p.VoteSeconds
	}
	if p.MinPlayers != nil {
		settings.MinPlayers = *p.MinPlayers
	}
	if p.MaxPlayers != nil {
		settings.MaxPlayers = *p.MaxPlayers
	}
	if p.AcronymMin != nil {
		settings.AcronymMin = *p.AcronymMin
	}
	if p.AcronymMax != nil {
		settings.AcronymMax = *p.AcronymMax
	}
	if p.BetweenSeconds != nil {
		settings.BetweenSeconds = *p.BetweenSeconds
	}
	if p.ExcludedLetters != nil {
		settings.ExcludedLetters = *p.ExcludedLetters
	}
	if p.MaxEdits != nil {
		settings.MaxEdits = *p.MaxEdits
	}
	if p.MaxVoteChanges != nil {
		settings.MaxVoteChanges = *p.MaxVoteChanges
	}
	if p.AllowReadyCheck != nil {
		settings.AllowReadyCheck = *p.AllowReadyCheck
	}
	if p.Visibility != nil {
		settings.Visibility = *p.Visibility
	}
}

type joinRequest struct {
	Code     string `json:"code" binding:"required,joincode"`
	Nickname string `json:"nickname" binding:"required,max=20"`
	Password string `json:"password" binding:"max=64"`
}

type playerRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

type targetRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	TargetID uint `json:"target_id" binding:"required"`
}

type banRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	TargetID uint   `json:"target_id" binding:"required"`
	Reason   string `json:"reason" binding:"max=140"`
}

type cohostRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	TargetID uint `json:"target_id" binding:"required"`
	Grant    bool `json:"grant"`
}

type answerRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Text     string `json:"text" binding:"required,max=280"`
}

type readyRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	Ready    bool `json:"ready"`
}

type voteRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	AnswerID uint `json:"answer_id" binding:"required"`
}
