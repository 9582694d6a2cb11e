package models

import (
	"time"

	"github.com/GitShailendra/HackOnX-sub001/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusUpdateRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
	Force   bool   `json:"force,omitempty"`
}

type PaymentStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationResponse struct {
	ID            string               `json:"id"`
	Email         string               `json:"email"`
	TeamName      string               `json:"teamName"`
	Type          string               `json:"type"`
	Members       []string             `json:"members"`
	Domain        string               `json:"domain"`
	Institution   string               `json:"institution"`
	Status        string               `json:"status"`
	PaymentStatus string               `json:"paymentStatus"`
	Remarks       string               `json:"remarks,omitempty"`
	Attachments   []storage.Attachment `json:"attachments"`
	AverageRating float64              `json:"averageRating"`
	JudgeCount    int                  `json:"judgeCount"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func TransformApplicationFromStorage(app *storage.Application) ApplicationResponse {
	members := app.Members
	if members == nil {
		members = []string{}
	}
	attachments := app.Attachments
	if attachments == nil {
		attachments = []storage.Attachment{}
	}
	return ApplicationResponse{
		ID:            app.ID,
		Email:         app.Email,
		TeamName:      app.TeamName,
		Type:          app.Type,
		Members:       members,
		Domain:        app.Domain,
		Institution:   app.Institution,
		Status:        app.Status,
		PaymentStatus: app.PaymentStatus,
		Remarks:       app.Remarks,
		Attachments:   attachments,
		AverageRating: app.AverageRating,
		JudgeCount:    len(app.Ratings),
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}
