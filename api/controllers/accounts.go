package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AccountController struct {
	accounts storage.AccountStorage
	tokens   *transport.TokenIssuer
}

func NewAccountController(accounts storage.AccountStorage, tokens *transport.TokenIssuer) *AccountController {
	return &AccountController{
		accounts: accounts,
		tokens:   tokens,
	}
}

func (c *AccountController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/login", c.login)

	group := engine.Group("/api/admin/accounts", transport.AdminAuthMiddleware())
	group.GET("", c.list)
	group.POST("", c.create)
	group.DELETE("/:email", c.delete)
}

// login godoc
// @Summary Exchange judge or manager credentials for a bearer token
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Email and password"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/login [post]
func (c *AccountController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "email and password are required"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	account, err := c.accounts.Get(g.Request.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same answer as a wrong password, no account enumeration.
			g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "invalid credentials"})
			return
		}
		logging.Log.Errorf("ACCOUNT: failed to load account for login: %v", err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not process login"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		logging.Log.Warnf("ACCOUNT: failed login attempt for %s", email)
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := c.tokens.Issue(account.Email, account.Name, account.Role)
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to issue token for %s: %v", email, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not issue token"})
		return
	}

	logging.Log.Infof("ACCOUNT: %s logged in as %s", account.Email, account.Role)
	g.JSON(http.StatusOK, &models.LoginResponse{
		Token: token,
		Role:  account.Role,
		Name:  account.Name,
	})
}

// @Security AdminToken
// create godoc
// @Summary Create a judge or manager account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body models.CreateAccountRequest true "Account details"
// @Success 201 {object} models.AccountResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/accounts [post]
func (c *AccountController) create(g *gin.Context) {
	var req models.CreateAccountRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "a valid email is required"})
		return
	}
	if _, ok := models.ValidRoles[models.Role(req.Role)]; !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "role must be judge or manager"})
		return
	}
	if len(req.Password) < 8 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "password must be at least 8 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to hash password: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create account"})
		return
	}

	account := &storage.Account{
		Email:        email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.accounts.Create(g.Request.Context(), account); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "account already exists"})
			return
		}
		logging.Log.Errorf("ACCOUNT: failed to create account: %v", err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not create account"})
		return
	}

	logging.Log.Infof("ACCOUNT: created %s account for %s", account.Role, account.Email)
	g.JSON(http.StatusCreated, models.TransformAccountFromStorage(account))
}

// @Security AdminToken
// list godoc
// @Summary List judge and manager accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} models.AccountResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/accounts [get]
func (c *AccountController) list(g *gin.Context) {
	accounts, err := c.accounts.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to list accounts: %v", err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not list accounts"})
		return
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, models.TransformAccountFromStorage(a))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security AdminToken
// delete godoc
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/accounts/{email} [delete]
func (c *AccountController) delete(g *gin.Context) {
	email := g.Param("email")
	if _, err := c.accounts.Get(g.Request.Context(), email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "account not found"})
			return
		}
		logging.Log.Errorf("ACCOUNT: failed to load account %s for delete: %v", email, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not delete account"})
		return
	}
	if err := c.accounts.Delete(g.Request.Context(), email); err != nil {
		logging.Log.Errorf("ACCOUNT: failed to delete account %s: %v", email, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not delete account"})
		return
	}
	logging.Log.Infof("ACCOUNT: deleted account %s", email)
	g.JSON(http.StatusOK, gin.H{"deleted": email})
}
