package controllers

import (
	"net/http"

	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	applications storage.ApplicationStorage
	tokens       *transport.TokenIssuer
}

func NewLeaderboardController(applications storage.ApplicationStorage, tokens *transport.TokenIssuer) *LeaderboardController {
	return &LeaderboardController{
		applications: applications,
		tokens:       tokens,
	}
}

func (c *LeaderboardController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api", transport.RoleAuthMiddleware(c.tokens, string(models.RoleJudge), string(models.RoleManager)))

	group.GET("/leaderboard", c.getLeaderboard)
}

// getLeaderboard godoc
// @Summary Ranked board of shortlisted, rated teams
// @Description Average rating descending, team id ascending on ties; teams without ratings are excluded
// @Tags leaderboard
// @Produce json
// @Success 200 {object} models.LeaderboardResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/leaderboard [get]
func (c *LeaderboardController) getLeaderboard(g *gin.Context) {
	apps, err := c.applications.GetByStatus(g.Request.Context(), string(models.StatusShortlisted))
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load shortlisted applications: %v", err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not build leaderboard"})
		return
	}

	entries := models.BuildLeaderboard(apps)
	g.JSON(http.StatusOK, &models.LeaderboardResponse{
		Count: len(entries),
		Data:  entries,
	})
}
