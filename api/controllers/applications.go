package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/api/models"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/notify"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/gin-gonic/gin"
)

var errIllegalTransition = errors.New("illegal status transition")

type ApplicationController struct {
	applications storage.ApplicationStorage
	attachments  storage.AttachmentStorage
	notifier     Notifier
	tokens       *transport.TokenIssuer
}

func NewApplicationController(applications storage.ApplicationStorage, attachments storage.AttachmentStorage, notifier Notifier, tokens *transport.TokenIssuer) *ApplicationController {
	return &ApplicationController{
		applications: applications,
		attachments:  attachments,
		notifier:     notifier,
		tokens:       tokens,
	}
}

func (c *ApplicationController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api", transport.RoleAuthMiddleware(c.tokens, string(models.RoleManager)))

	group.PUT("/application-status/:id", c.setStatus)
	group.PUT("/payment-status/:id", c.setPaymentStatus)
	group.GET("/applications", c.list)
	group.GET("/applications/:id", c.get)

	engine.DELETE("/api/applications/:id", transport.AdminAuthMiddleware(), c.delete)
}

// setStatus godoc
// @Summary Update an application's workflow status
// @Description Moves the application along pending_proposal -> pending -> under_review -> shortlisted|rejected; force re-sets to any enumerated value
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body models.StatusUpdateRequest true "New status and optional remarks"
// @Success 200 {object} models.ApplicationResponse
// @Failure 400 {object} models.ErrorResponse "Status not in the enumerated set"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Transition not allowed without force"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/application-status/{id} [put]
func (c *ApplicationController) setStatus(g *gin.Context) {
	id := g.Param("id")

	var req models.StatusUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if !models.IsValidStatus(req.Status) {
		logging.Log.Warnf("APPLICATION: rejected invalid status %q for %s", req.Status, id)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid status"})
		return
	}

	newStatus := models.ApplicationStatus(req.Status)
	app, err := applyUpdate(g.Request.Context(), c.applications, id, func(app *storage.Application) error {
		current := models.ApplicationStatus(app.Status)
		if current != newStatus && !req.Force && !models.CanTransition(current, newStatus) {
			return errIllegalTransition
		}
		app.Status = string(newStatus)
		app.Remarks = req.Remarks
		app.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, errIllegalTransition) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "status transition not allowed"})
			return
		}
		logging.Log.Errorf("APPLICATION: failed to set status on %s: %v", id, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not update status"})
		return
	}

	logging.Log.Infof("APPLICATION: application %s moved to %s", app.ID, app.Status)
	c.notifier.Dispatch(notify.Message{
		Kind:      notify.KindStatusChange,
		Recipient: app.Email,
		Payload: map[string]string{
			"teamName": app.TeamName,
			"domain":   app.Domain,
			"status":   app.Status,
			"remarks":  app.Remarks,
		},
	})

	g.JSON(http.StatusOK, models.TransformApplicationFromStorage(app))
}

// setPaymentStatus godoc
// @Summary Review a payment proof
// @Description Payment status is independent of the application workflow status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body models.PaymentStatusRequest true "approved or rejected"
// @Success 200 {object} models.ApplicationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/payment-status/{id} [put]
func (c *ApplicationController) setPaymentStatus(g *gin.Context) {
	id := g.Param("id")

	var req models.PaymentStatusRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if !models.IsValidPaymentStatus(req.Status) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid payment status"})
		return
	}

	app, err := applyUpdate(g.Request.Context(), c.applications, id, func(app *storage.Application) error {
		app.PaymentStatus = req.Status
		app.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		logging.Log.Errorf("APPLICATION: failed to set payment status on %s: %v", id, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not update payment status"})
		return
	}

	logging.Log.Infof("APPLICATION: payment status on %s set to %s", app.ID, app.PaymentStatus)
	c.notifier.Dispatch(notify.Message{
		Kind:      notify.KindPaymentUpdate,
		Recipient: app.Email,
		Payload: map[string]string{
			"teamName":      app.TeamName,
			"paymentStatus": app.PaymentStatus,
		},
	})

	g.JSON(http.StatusOK, models.TransformApplicationFromStorage(app))
}

// list godoc
// @Summary List applications, optionally filtered by status
// @Tags applications
// @Produce json
// @Param status query string false "Filter by workflow status"
// @Success 200 {array} models.ApplicationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/applications [get]
func (c *ApplicationController) list(g *gin.Context) {
	var apps []*storage.Application
	var err error

	if status := g.Query("status"); status != "" {
		if !models.IsValidStatus(status) {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid status"})
			return
		}
		apps, err = c.applications.GetByStatus(g.Request.Context(), status)
	} else {
		apps, err = c.applications.GetAll(g.Request.Context())
	}
	if err != nil {
		logging.Log.Errorf("APPLICATION: failed to list applications: %v", err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not list applications"})
		return
	}

	responses := make([]models.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, models.TransformApplicationFromStorage(app))
	}
	g.JSON(http.StatusOK, responses)
}

// get godoc
// @Summary Get one application
// @Tags applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} models.ApplicationResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/applications/{id} [get]
func (c *ApplicationController) get(g *gin.Context) {
	app, err := c.applications.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "application not found"})
		return
	}
	g.JSON(http.StatusOK, models.TransformApplicationFromStorage(app))
}

// @Security AdminToken
// delete godoc
// @Summary Delete an application permanently
// @Description Terminal administrative action; attachments are removed best-effort
// @Tags applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/applications/{id} [delete]
func (c *ApplicationController) delete(g *gin.Context) {
	id := g.Param("id")

	app, err := c.applications.Get(g.Request.Context(), id)
	if err != nil {
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "application not found"})
		return
	}

	for _, attachment := range app.Attachments {
		if err := c.attachments.Delete(g.Request.Context(), attachment.ObjectKey); err != nil {
			logging.Log.Warnf("APPLICATION: could not delete attachment %s: %v", attachment.ObjectKey, err)
		}
	}

	if err := c.applications.Delete(g.Request.Context(), id); err != nil {
		logging.Log.Errorf("APPLICATION: failed to delete %s: %v", id, err)
		g.JSON(statusFromStorageError(err), &models.ErrorResponse{Error: "could not delete application"})
		return
	}

	logging.Log.Infof("APPLICATION: deleted application %s", id)
	g.JSON(http.StatusOK, gin.H{"deleted": id})
}
