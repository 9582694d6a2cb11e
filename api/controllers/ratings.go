package controllers

import (
	"net/http"
	"strings"

	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
)

type RatingController struct {
	applications storage.ApplicationStorage
	tokens       *transport.TokenIssuer
}

func NewRatingController(applications storage.ApplicationStorage, tokens *transport.TokenIssuer) *RatingController {
	return &RatingController{
		applications: applications,
		tokens:       tokens,
	}
}

func (c *RatingController) RegisterRoutes(engine *gin.Engine) {
	judgeOnly := transport.RoleAuthMiddleware(c.tokens, string(models.RoleJudge))
	judgeOrManager := transport.RoleAuthMiddleware(c.tokens, string(models.RoleJudge), string(models.RoleManager))

	group := engine.Group("/api")
	group.POST("/rate-team/:teamId", judgeOnly, c.rateTeam)
	group.GET("/judge-rating/:teamId", judgeOnly, c.getOwnRating)
	group.GET("/team-ratings/:teamId", judgeOrManager, c.getTeamRatings)
}

// rateTeam godoc
// @Summary Submit or replace a judge's rating for a team
// @Description One rating per judge per team; resubmission replaces the previous entry and the average is recomputed
// @Tags ratings
// @Accept json
// @Produce json
// @Param teamId path string true "Team (application) ID"
// @Param request body models.RateTeamRequest true "Five criterion scores, each 1-10"
// @Success 200 {object} models.RateTeamResponse
// @Failure 400 {object} models.ErrorResponse "Missing or out-of-range scores"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/rate-team/{teamId} [post]
func (c *RatingController) rateTeam(g *gin.Context) {
	teamID := g.Param("teamId")
	judgeID := g.GetString(transport.ContextActorEmail)

	var req models.RateTeamRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	if missing := req.MissingScores(); len(missing) > 0 {
		logging.Log.Warnf("RATING: judge %s submitted incomplete scores for %s: %v", judgeID, teamID, missing)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "missing scores: " + strings.Join(missing, ", ")})
		return
	}
	if bad := req.OutOfRangeScores(); len(bad) > 0 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "scores must be between 1 and 10: " + strings.Join(bad, ", ")})
		return
	}

	rating := models.NewRating(judgeID, *req.Innovation, *req.Technicality, *req.Presentation, *req.Feasibility, *req.Impact, req.Comments)

	app, err := applyUpdate(g.Request.Context(), c.applications, teamID, func(app *storage.Application) error {
		if replaced := models.UpsertRating(app, rating); replaced {
			logging.Log.Infof("RATING: judge %s replaced their rating for %s", judgeID, teamID)
		}
		app.UpdatedAt = rating.CreatedAt
		return nil
	})
	if err != nil {
		logging.Log.Errorf("RATING: failed to save rating for %s: %v", teamID, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not save rating"})
		return
	}

	logging.Log.Infof("RATING: judge %s rated %s, total %.2f, average now %.2f", judgeID, teamID, rating.TotalScore, app.AverageRating)
	g.JSON(http.StatusOK, &models.RateTeamResponse{
		TeamID:        teamID,
		Rating:        rating,
		AverageRating: app.AverageRating,
	})
}

// getOwnRating godoc
// @Summary Get the calling judge's rating for a team
// @Tags ratings
// @Produce json
// @Param teamId path string true "Team (application) ID"
// @Success 200 {object} models.JudgeRatingResponse "Rating is null when the judge has not rated yet"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judge-rating/{teamId} [get]
func (c *RatingController) getOwnRating(g *gin.Context) {
	teamID := g.Param("teamId")
	judgeID := g.GetString(transport.ContextActorEmail)

	app, err := c.applications.Get(g.Request.Context(), teamID)
	if err != nil {
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "team not found"})
		return
	}

	g.JSON(http.StatusOK, &models.JudgeRatingResponse{
		TeamID: teamID,
		Rating: models.FindRatingByJudge(app, judgeID),
	})
}

// getTeamRatings godoc
// @Summary Get all ratings for a team with the current average
// @Tags ratings
// @Produce json
// @Param teamId path string true "Team (application) ID"
// @Success 200 {object} models.TeamRatingsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/team-ratings/{teamId} [get]
func (c *RatingController) getTeamRatings(g *gin.Context) {
	teamID := g.Param("teamId")

	app, err := c.applications.Get(g.Request.Context(), teamID)
	if err != nil {
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "team not found"})
		return
	}

	ratings := app.Ratings
	if ratings == nil {
		ratings = []storage.Rating{}
	}
	g.JSON(http.StatusOK, &models.TeamRatingsResponse{
		TeamID:        teamID,
		TeamName:      app.TeamName,
		Ratings:       ratings,
		AverageRating: models.AverageRating(app.Ratings),
	})
}
