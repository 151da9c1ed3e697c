package game

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameRunning     = errors.New("game already running")
	ErrGameFinished    = errors.New("game already finished")
	ErrGameStarted     = errors.New("game already started")
	ErrNotEnough       = errors.New("not enough players")
	ErrNotAMember      = errors.New("player is not a member of this game")
	ErrNotActive       = errors.New("player is not active in this game")
	ErrNotHost         = errors.New("only the host or a co-host may do this")
	ErrTargetIsHost    = errors.New("the host cannot be targeted")
	ErrBanned          = errors.New("player is banned from this game")
	ErrLobbyFull       = errors.New("lobby is full")
	ErrNicknameTaken   = errors.New("nickname is already taken")
	ErrWrongPassword   = errors.New("wrong password")
	ErrWrongPhase      = errors.New("action not valid in the current phase")
	ErrDeadlinePassed  = errors.New("deadline has passed")
	ErrNoAnswer        = errors.New("player has no answer this round")
	ErrAnswerNotFound  = errors.New("answer not found in this round")
	ErrSelfVote        = errors.New("players may not vote for their own answer")
	ErrNoVote          = errors.New("player has no vote this round")
	ErrEditLimit       = errors.New("answer edit limit reached")
	ErrVoteChangeLimit = errors.New("vote change limit reached")
	ErrReadyDisabled   = errors.New("ready check is disabled for this game")
	ErrCodesExhausted  = errors.New("join code generation exhausted retry budget")
)
