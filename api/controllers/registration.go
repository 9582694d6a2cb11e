package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/notify"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type RegistrationController struct {
	applications storage.ApplicationStorage
	attachments  storage.AttachmentStorage
	notifier     Notifier
	tokens       *transport.TokenIssuer
}

func NewRegistrationController(applications storage.ApplicationStorage, attachments storage.AttachmentStorage, notifier Notifier, tokens *transport.TokenIssuer) *RegistrationController {
	return &RegistrationController{
		applications: applications,
		attachments:  attachments,
		notifier:     notifier,
		tokens:       tokens,
	}
}

func (c *RegistrationController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.POST("/register", c.register)
	group.POST("/applications/:id/files/:kind", c.uploadFile)
	group.GET("/applications/:id/files/:kind",
		transport.RoleAuthMiddleware(c.tokens, string(models.RoleManager), string(models.RoleJudge)), c.downloadFile)
}

// register godoc
// @Summary Register a participant or team
// @Description Multipart registration with optional id card and proposal files
// @Tags registration
// @Accept mpfd
// @Produce json
// @Param email formData string true "Leader email"
// @Param teamName formData string true "Team name"
// @Param type formData string true "individual or team"
// @Param domain formData string true "Domain track"
// @Success 201 {object} models.ApplicationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/register [post]
func (c *RegistrationController) register(g *gin.Context) {
	email := strings.TrimSpace(strings.ToLower(g.PostForm("email")))
	teamName := strings.TrimSpace(g.PostForm("teamName"))
	appType := g.PostForm("type")
	domain := g.PostForm("domain")
	institution := strings.TrimSpace(g.PostForm("institution"))
	members := g.PostFormArray("members")

	if email == "" || !strings.Contains(email, "@") {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "a valid email is required"})
		return
	}
	if teamName == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "teamName is required"})
		return
	}
	if _, ok := models.ValidApplicationTypes[models.ApplicationType(appType)]; !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "type must be individual or team"})
		return
	}
	if _, ok := models.ValidDomains[domain]; !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid domain"})
		return
	}
	if len(members) > models.MaxExtraMembers {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: fmt.Sprintf("at most %d additional members allowed", models.MaxExtraMembers)})
		return
	}

	if _, err := c.applications.GetByEmail(g.Request.Context(), email); err == nil {
		logging.Log.Warnf("REGISTRATION: duplicate registration attempt for %s", email)
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "email already registered"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		// Only a confirmed miss means the email is free; an outage must not
		// let a duplicate through.
		logging.Log.Errorf("REGISTRATION: could not check email %s: %v", email, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not verify email"})
		return
	}

	id, err := gonanoid.New(12)
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to generate application id: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create application"})
		return
	}

	now := time.Now().UTC()
	app := &storage.Application{
		ID:            id,
		Email:         email,
		TeamName:      teamName,
		Type:          appType,
		Members:       members,
		Domain:        domain,
		Institution:   institution,
		Status:        string(models.StatusPendingProposal),
		PaymentStatus: string(models.PaymentPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Optional files at registration time. A proposal present up front means
	// the application skips the pending_proposal entry state.
	for _, kind := range []models.AttachmentKind{models.AttachmentIDCard, models.AttachmentProposal} {
		header, err := g.FormFile(formFieldForKind(kind))
		if err != nil {
			continue
		}
		attachment, err := c.storeFile(g, app.ID, kind, header)
		if err != nil {
			g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not store uploaded file"})
			return
		}
		app.Attachments = append(app.Attachments, *attachment)
		if kind == models.AttachmentProposal {
			app.Status = string(models.StatusPending)
		}
	}

	if err := c.applications.Create(g.Request.Context(), app); err != nil {
		logging.Log.Errorf("REGISTRATION: failed to create application: %v", err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not save application"})
		return
	}

	logging.Log.Infof("REGISTRATION: created application %s for %s with status %s", app.ID, app.Email, app.Status)
	c.notifier.Dispatch(notify.Message{
		Kind:      notify.KindWelcome,
		Recipient: app.Email,
		Payload: map[string]string{
			"teamName":      app.TeamName,
			"domain":        app.Domain,
			"applicationId": app.ID,
		},
	})

	g.JSON(http.StatusCreated, models.TransformApplicationFromStorage(app))
}

// uploadFile godoc
// @Summary Upload an attachment for an application
// @Description Accepts id_card, proposal or payment_proof; a proposal upload moves a pending_proposal application to pending
// @Tags registration
// @Accept mpfd
// @Produce json
// @Param id path string true "Application ID"
// @Param kind path string true "Attachment kind"
// @Param file formData file true "File to upload"
// @Success 200 {object} models.ApplicationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/applications/{id}/files/{kind} [post]
func (c *RegistrationController) uploadFile(g *gin.Context) {
	id := g.Param("id")
	kind := models.AttachmentKind(g.Param("kind"))
	if _, ok := models.ValidAttachmentKinds[kind]; !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid attachment kind"})
		return
	}

	header, err := g.FormFile("file")
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "file is required"})
		return
	}

	attachment, err := c.storeFile(g, id, kind, header)
	if err != nil {
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not store uploaded file"})
		return
	}

	statusChanged := false
	app, err := applyUpdate(g.Request.Context(), c.applications, id, func(app *storage.Application) error {
		statusChanged = false
		app.Attachments = append(app.Attachments, *attachment)
		if kind == models.AttachmentProposal && app.Status == string(models.StatusPendingProposal) {
			app.Status = string(models.StatusPending)
			statusChanged = true
		}
		if kind == models.AttachmentPaymentProof {
			app.PaymentStatus = string(models.PaymentPending)
		}
		app.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to attach %s to %s: %v", kind, id, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not update application"})
		return
	}

	if statusChanged {
		c.notifier.Dispatch(notify.Message{
			Kind:      notify.KindStatusChange,
			Recipient: app.Email,
			Payload: map[string]string{
				"teamName": app.TeamName,
				"domain":   app.Domain,
				"status":   app.Status,
			},
		})
	}

	logging.Log.Infof("REGISTRATION: attached %s to application %s", kind, id)
	g.JSON(http.StatusOK, models.TransformApplicationFromStorage(app))
}

// downloadFile godoc
// @Summary Download the latest attachment of a kind
// @Tags registration
// @Produce octet-stream
// @Param id path string true "Application ID"
// @Param kind path string true "Attachment kind"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/applications/{id}/files/{kind} [get]
func (c *RegistrationController) downloadFile(g *gin.Context) {
	id := g.Param("id")
	kind := string(g.Param("kind"))

	app, err := c.applications.Get(g.Request.Context(), id)
	if err != nil {
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "application not found"})
		return
	}

	// Latest upload of the kind wins; earlier versions stay in the bucket.
	var found *storage.Attachment
	for i := range app.Attachments {
		if app.Attachments[i].Kind == kind {
			found = &app.Attachments[i]
		}
	}
	if found == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no attachment of that kind"})
		return
	}

	body, contentType, err := c.attachments.Get(g.Request.Context(), found.ObjectKey)
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to fetch attachment %s: %v", found.ObjectKey, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not fetch attachment"})
		return
	}
	defer func() { _ = body.Close() }()

	g.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", found.FileName))
	g.DataFromReader(http.StatusOK, found.Size, contentType, body, nil)
}

func (c *RegistrationController) storeFile(g *gin.Context, appID string, kind models.AttachmentKind, header *multipart.FileHeader) (*storage.Attachment, error) {
	file, err := header.Open()
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to open uploaded file: %v", err)
		return nil, err
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("applications/%s/%s/%s", appID, kind, uuid.NewString())
	if err := c.attachments.Put(g.Request.Context(), key, contentType, file, header.Size); err != nil {
		return nil, err
	}

	return &storage.Attachment{
		Kind:        string(kind),
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		ObjectKey:   key,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func formFieldForKind(kind models.AttachmentKind) string {
	switch kind {
	case models.AttachmentIDCard:
		return "idCard"
	case models.AttachmentProposal:
		return "proposal"
	default:
		return string(kind)
	}
}
