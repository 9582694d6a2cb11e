package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	testutils "github.com/GitShailendra/HackOnX-sub001/api/controllers/testing"
	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ratingRouter wires the rating controller against a substitute store so a
// test can inject write conflicts or outages the shared fake never produces.
func ratingRouter(env *testEnv, store storage.ApplicationStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewRatingController(store, env.tokens).RegisterRoutes(r)
	return r
}

func intPtr(v int) *int { return &v }

func fullScores(innovation, technicality, presentation, feasibility, impact int) models.RateTeamRequest {
	return models.RateTeamRequest{
		Innovation:   intPtr(innovation),
		Technicality: intPtr(technicality),
		Presentation: intPtr(presentation),
		Feasibility:  intPtr(feasibility),
		Impact:       intPtr(impact),
	}
}

func TestRateTeam(t *testing.T) {
	env := setupTestEnvironment(t)

	t.Run("Happy path - submit a full rating", func(t *testing.T) {
		env.seedApplication(t, "team-a", string(models.StatusShortlisted))

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-a",
			fullScores(9, 8, 7, 9, 8), env.judgeHeaders(t, "judge1@hackonx.test"))

		require.Equal(t, http.StatusOK, res.Code, "Expected 200 from rate-team")

		var response models.RateTeamResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response), "Should parse rating response")
		assert.Equal(t, "team-a", response.TeamID, "Team id should round-trip")
		assert.InDelta(t, 8.2, response.Rating.TotalScore, 1e-9, "Total is the mean of the five criteria")
		assert.InDelta(t, 8.2, response.AverageRating, 1e-9, "Single rating sets the average")
	})

	t.Run("Happy path - resubmission replaces the judge's rating", func(t *testing.T) {
		env.seedApplication(t, "team-b", string(models.StatusShortlisted))
		headers := env.judgeHeaders(t, "judge1@hackonx.test")

		first := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-b",
			fullScores(5, 5, 5, 5, 5), headers)
		require.Equal(t, http.StatusOK, first.Code, "Expected 200 from first submission")

		second := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-b",
			fullScores(10, 10, 10, 10, 10), headers)
		require.Equal(t, http.StatusOK, second.Code, "Expected 200 from resubmission")

		var response models.RateTeamResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response), "Should parse rating response")
		assert.InDelta(t, 10.0, response.AverageRating, 1e-9, "Replaced rating should not leave a duplicate behind")

		ratingsRes := testutils.PerformRequest(env.router, http.MethodGet, "/api/team-ratings/team-b", nil, headers)
		require.Equal(t, http.StatusOK, ratingsRes.Code, "Expected 200 from team-ratings")

		var all models.TeamRatingsResponse
		require.NoError(t, json.Unmarshal(ratingsRes.Body.Bytes(), &all), "Should parse team ratings")
		assert.Len(t, all.Ratings, 1, "Exactly one rating per judge")
	})

	t.Run("Happy path - average over three judges", func(t *testing.T) {
		env.seedApplication(t, "team-c", string(models.StatusShortlisted))

		submissions := []struct {
			judge  string
			scores models.RateTeamRequest
		}{
			{"judge1@hackonx.test", fullScores(9, 8, 7, 9, 8)},
			{"judge2@hackonx.test", fullScores(7, 7, 6, 8, 7)},
			{"judge3@hackonx.test", fullScores(10, 9, 9, 10, 9)},
		}

		var last models.RateTeamResponse
		for _, s := range submissions {
			res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-c",
				s.scores, env.judgeHeaders(t, s.judge))
			require.Equal(t, http.StatusOK, res.Code, "Expected 200 from rate-team")
			require.NoError(t, json.Unmarshal(res.Body.Bytes(), &last), "Should parse rating response")
		}

		// (8.2 + 7.0 + 9.4) / 3
		assert.InDelta(t, 8.2, last.AverageRating, 1e-9, "Average of the three totals")
	})

	t.Run("Unhappy path - four of five scores", func(t *testing.T) {
		env.seedApplication(t, "team-d", string(models.StatusShortlisted))
		headers := env.judgeHeaders(t, "judge1@hackonx.test")

		partial := models.RateTeamRequest{
			Innovation:   intPtr(9),
			Technicality: intPtr(8),
			Presentation: intPtr(7),
			Feasibility:  intPtr(9),
		}
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-d", partial, headers)
		assert.Equal(t, http.StatusBadRequest, res.Code, "Expected 400 for missing scores")
		assert.Contains(t, res.Body.String(), "missing scores", "Error should name the failure")
		assert.Contains(t, res.Body.String(), "impact", "Error should name the missing criterion")

		ratingsRes := testutils.PerformRequest(env.router, http.MethodGet, "/api/team-ratings/team-d", nil, headers)
		var all models.TeamRatingsResponse
		require.NoError(t, json.Unmarshal(ratingsRes.Body.Bytes(), &all), "Should parse team ratings")
		assert.Empty(t, all.Ratings, "No rating appended on a rejected submission")
		assert.Zero(t, all.AverageRating, "Average unchanged on a rejected submission")
	})

	t.Run("Unhappy path - score out of range", func(t *testing.T) {
		env.seedApplication(t, "team-e", string(models.StatusShortlisted))

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-e",
			fullScores(11, 8, 7, 9, 8), env.judgeHeaders(t, "judge1@hackonx.test"))
		assert.Equal(t, http.StatusBadRequest, res.Code, "Expected 400 for out-of-range score")
		assert.Contains(t, res.Body.String(), "between 1 and 10", "Error should state the scale")
	})

	t.Run("Unhappy path - unknown team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/ghost-team",
			fullScores(9, 8, 7, 9, 8), env.judgeHeaders(t, "judge1@hackonx.test"))
		assert.Equal(t, http.StatusNotFound, res.Code, "Expected 404 for unknown team")
	})

	t.Run("Unhappy path - manager token cannot rate", func(t *testing.T) {
		env.seedApplication(t, "team-f", string(models.StatusShortlisted))

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-f",
			fullScores(9, 8, 7, 9, 8), env.managerHeaders(t))
		assert.Equal(t, http.StatusUnauthorized, res.Code, "Expected 401 for a non-judge role")
	})

	t.Run("Unhappy path - no bearer token", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-a",
			fullScores(9, 8, 7, 9, 8), nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "Expected 401 without a token")
	})
}

func TestRateTeamConcurrency(t *testing.T) {
	env := setupTestEnvironment(t)

	t.Run("Happy path - rival rating landing mid-write is not lost", func(t *testing.T) {
		env.seedApplication(t, "contested", string(models.StatusShortlisted))

		// judge2's rating commits between judge1's read and write, so the
		// first write comes back as a version conflict and is retried.
		store := &rivalWriterApplicationStorage{memoryApplicationStorage: env.applications}
		store.rival = func(app *storage.Application) {
			models.UpsertRating(app, models.NewRating("judge2@hackonx.test", 7, 7, 6, 8, 7, ""))
		}
		router := ratingRouter(env, store)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/rate-team/contested",
			fullScores(10, 9, 9, 10, 9), env.judgeHeaders(t, "judge1@hackonx.test"))

		require.Equal(t, http.StatusOK, res.Code, "Expected 200 after the retried write")
		assert.Equal(t, 1, store.conflicts, "Exactly one write should have conflicted")

		var response models.RateTeamResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response), "Should parse rating response")
		// (9.4 + 7.0) / 2
		assert.InDelta(t, 8.2, response.AverageRating, 1e-9, "Average covers both judges")

		stored, err := env.applications.Get(context.TODO(), "contested")
		require.NoError(t, err, "Should load the contested application")
		require.Len(t, stored.Ratings, 2, "Both ratings persisted")
		assert.NotNil(t, models.FindRatingByJudge(stored, "judge1@hackonx.test"), "Caller's rating present")
		assert.NotNil(t, models.FindRatingByJudge(stored, "judge2@hackonx.test"), "Rival's rating survived the retry")
	})

	t.Run("Unhappy path - persistent conflicts surface as 409", func(t *testing.T) {
		env.seedApplication(t, "churning", string(models.StatusShortlisted))

		store := &stuckApplicationStorage{memoryApplicationStorage: env.applications}
		router := ratingRouter(env, store)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/rate-team/churning",
			fullScores(9, 8, 7, 9, 8), env.judgeHeaders(t, "judge1@hackonx.test"))

		assert.Equal(t, http.StatusConflict, res.Code, "Expected 409 once the retry budget runs out")
		assert.Equal(t, maxUpdateAttempts, store.updates, "Write attempts are bounded")

		stored, err := env.applications.Get(context.TODO(), "churning")
		require.NoError(t, err, "Should load the application")
		assert.Empty(t, stored.Ratings, "Nothing committed on a failed write")
	})

	t.Run("Unhappy path - storage outage answers 503", func(t *testing.T) {
		store := &unavailableApplicationStorage{memoryApplicationStorage: env.applications}
		router := ratingRouter(env, store)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/rate-team/anything",
			fullScores(9, 8, 7, 9, 8), env.judgeHeaders(t, "judge1@hackonx.test"))

		assert.Equal(t, http.StatusServiceUnavailable, res.Code, "Expected 503 when the store is down")
	})
}

func TestGetJudgeRating(t *testing.T) {
	env := setupTestEnvironment(t)

	t.Run("Happy path - null before the judge rates", func(t *testing.T) {
		env.seedApplication(t, "team-a", string(models.StatusShortlisted))

		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/judge-rating/team-a",
			nil, env.judgeHeaders(t, "judge1@hackonx.test"))
		require.Equal(t, http.StatusOK, res.Code, "Expected 200 from judge-rating")

		var response models.JudgeRatingResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response), "Should parse judge rating response")
		assert.Nil(t, response.Rating, "Rating is null before the judge submits")
	})

	t.Run("Happy path - own rating after submission", func(t *testing.T) {
		env.seedApplication(t, "team-b", string(models.StatusShortlisted))
		headers := env.judgeHeaders(t, "judge2@hackonx.test")

		submit := testutils.PerformRequest(env.router, http.MethodPost, "/api/rate-team/team-b",
			fullScores(7, 7, 6, 8, 7), headers)
		require.Equal(t, http.StatusOK, submit.Code, "Expected 200 from rate-team")

		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/judge-rating/team-b", nil, headers)
		require.Equal(t, http.StatusOK, res.Code, "Expected 200 from judge-rating")

		var response models.JudgeRatingResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response), "Should parse judge rating response")
		require.NotNil(t, response.Rating, "Rating should be present after submission")
		assert.Equal(t, "judge2@hackonx.test", response.Rating.JudgeID, "Should be the caller's own rating")
		assert.InDelta(t, 7.0, response.Rating.TotalScore, 1e-9, "Total should match the submission")
	})

	t.Run("Unhappy path - unknown team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/judge-rating/ghost-team",
			nil, env.judgeHeaders(t, "judge1@hackonx.test"))
		assert.Equal(t, http.StatusNotFound, res.Code, "Expected 404 for unknown team")
	})
}
