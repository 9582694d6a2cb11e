package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router       *gin.Engine
	applications *memoryApplicationStorage
	accounts     *memoryAccountStorage
	attachments  *memoryAttachmentStorage
	notifier     *recordingNotifier
	tokens       *transport.TokenIssuer
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	env := &testEnv{
		applications: newMemoryApplicationStorage(),
		accounts:     newMemoryAccountStorage(),
		attachments:  newMemoryAttachmentStorage(),
		notifier:     &recordingNotifier{},
		tokens:       &transport.TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()

	NewRegistrationController(env.applications, env.attachments, env.notifier, env.tokens).RegisterRoutes(r)
	NewApplicationController(env.applications, env.attachments, env.notifier, env.tokens).RegisterRoutes(r)
	NewRatingController(env.applications, env.tokens).RegisterRoutes(r)
	NewLeaderboardController(env.applications, env.tokens).RegisterRoutes(r)
	NewAccountController(env.accounts, env.tokens).RegisterRoutes(r)

	env.router = r
	return env
}

func (e *testEnv) bearerFor(t *testing.T, email, role string) map[string]string {
	t.Helper()
	token, err := e.tokens.Issue(email, "Test Actor", role)
	require.NoError(t, err, "Should issue bearer token")
	return map[string]string{"Authorization": "Bearer " + token}
}

func (e *testEnv) judgeHeaders(t *testing.T, email string) map[string]string {
	return e.bearerFor(t, email, string(models.RoleJudge))
}

func (e *testEnv) managerHeaders(t *testing.T) map[string]string {
	return e.bearerFor(t, "manager@hackonx.test", string(models.RoleManager))
}

func (e *testEnv) seedApplication(t *testing.T, id, status string) *storage.Application {
	t.Helper()
	now := time.Now().UTC()
	app := &storage.Application{
		ID:            id,
		Email:         id + "@teams.hackonx.test",
		TeamName:      "Team " + id,
		Type:          string(models.TypeTeam),
		Members:       []string{"Member One", "Member Two"},
		Domain:        "ai_ml",
		Institution:   "Test Institute",
		Status:        status,
		PaymentStatus: string(models.PaymentPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, e.applications.Create(context.TODO(), app), "Should seed application")
	return app
}
