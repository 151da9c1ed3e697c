// Package httpapi exposes the inbound game commands over HTTP. Each route
// maps 1:1 to a core action; all game logic lives in the game package.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"acroparty/internal/game"
)

type API struct {
	svc *game.Service
	log *zap.Logger
}

func New(svc *game.Service, logger *zap.Logger) *API {
	registerValidators()
	return &API{svc: svc, log: logger.Named("http")}
}

func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/games", a.createGame)
	api.POST("/games/join", a.joinGame)
	api.GET("/games/:id", a.getGame)
	api.POST("/games/:id/start", a.startGame)
	api.POST("/games/:id/leave", a.leaveGame)
	api.POST("/games/:id/kick", a.kickPlayer)
	api.POST("/games/:id/ban", a.banPlayer)
	api.POST("/games/:id/cohost", a.setCoHost)
	api.POST("/games/:id/bots", a.addBot)
	api.POST("/games/:id/keepalive", a.keepalive)
	api.POST("/games/:id/answers", a.submitAnswer)
	api.POST("/games/:id/ready", a.markReady)
	api.POST("/games/:id/votes", a.submitVote)
	api.POST("/games/:id/votes/retract", a.retractVote)
	return router
}

func (a *API) createGame(c *gin.Context) {
	var req createGameRequest
	if !a.bind(c, &req) {
		return
	}
	settings := game.DefaultSettings()
	req.apply(&settings)
	g, host, err := a.svc.CreateGame(settings, req.Nickname, req.Password, time.Now().UTC())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game_id":   g.ID,
		"join_code": g.JoinCode,
		"player_id": host.ID,
	})
}

func (a *API) joinGame(c *gin.Context) {
	var req joinRequest
	if !a.bind(c, &req) {
		return
	}
	g, player, err := a.svc.Join(req.Code, req.Nickname, req.Password, time.Now().UTC())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game_id":   g.ID,
		"player_id": player.ID,
	})
}

func (a *API) getGame(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	snap, err := a.svc.Snapshot(gameID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) startGame(c *gin.Context) {
	a.command(c, func(gameID uint, req *playerRequest) error {
		return a.svc.StartGame(gameID, req.PlayerID, time.Now().UTC())
	})
}

func (a *API) leaveGame(c *gin.Context) {
	a.command(c, func(gameID uint, req *playerRequest) error {
		return a.svc.Leave(gameID, req.PlayerID, time.Now().UTC())
	})
}

func (a *API) keepalive(c *gin.Context) {
	a.command(c, func(gameID uint, req *playerRequest) error {
		return a.svc.Keepalive(gameID, time.Now().UTC())
	})
}

func (a *API) kickPlayer(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req targetRequest
	if !a.bind(c, &req) {
		return
	}
	if err := a.svc.Kick(gameID, req.PlayerID, req.TargetID, time.Now().UTC()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) banPlayer(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req banRequest
	if !a.bind(c, &req) {
		return
	}
	if err := a.svc.Ban(gameID, req.PlayerID, req.TargetID, req.Reason, time.Now().UTC()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) setCoHost(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req cohostRequest
	if !a.bind(c, &req) {
		return
	}
	if err := a.svc.SetCoHost(gameID, req.PlayerID, req.TargetID, req.Grant, time.Now().UTC()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) addBot(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req playerRequest
	if !a.bind(c, &req) {
		return
	}
	bot, err := a.svc.AddBot(gameID, req.PlayerID, time.Now().UTC())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player_id": bot.ID, "nickname": bot.Nickname})
}

func (a *API) submitAnswer(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req answerRequest
	if !a.bind(c, &req) {
		return
	}
	if err := a.svc.SubmitAnswer(gameID, req.PlayerID, req.Text, time.Now().UTC()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) markReady(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req readyRequest
	if !a.bind(c, &req) {
		return
	}
	if err := a.svc.MarkReady(gameID, req.PlayerID, req.Ready, time.Now().UTC()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) submitVote(c *gin.Context) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req voteRequest
	if !a.bind(c, &req) {
		return
	}
	if err := a.svc.SubmitVote(gameID, req.PlayerID, req.AnswerID, time.Now().UTC()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) retractVote(c *gin.Context) {
	a.command(c, func(gameID uint, req *playerRequest) error {
		return a.svc.RetractVote(gameID, req.PlayerID, time.Now().UTC())
	})
}

func (a *API) command(c *gin.Context, run func(gameID uint, req *playerRequest) error) {
	gameID, ok := a.gameID(c)
	if !ok {
		return
	}
	var req playerRequest
	if !a.bind(c, &req) {
		return
	}
	if err := run(gameID, &req); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) gameID(c *gin.Context) (uint, bool) {
	value, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return 0, false
	}
	return uint(value), true
}

func (a *API) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (a *API) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.log.Error("command failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost),
		errors.Is(err, game.ErrTargetIsHost),
		errors.Is(err, game.ErrBanned),
		errors.Is(err, game.ErrWrongPassword):
		return http.StatusForbidden
	case errors.Is(err, game.ErrLobbyFull),
		errors.Is(err, game.ErrNicknameTaken),
		errors.Is(err, game.ErrGameStarted),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrDeadlinePassed),
		errors.Is(err, game.ErrEditLimit),
		errors.Is(err, game.ErrVoteChangeLimit):
		return http.StatusConflict
	case errors.Is(err, game.ErrCodesExhausted):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
