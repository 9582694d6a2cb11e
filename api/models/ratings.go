package models

import "github.com/GitShailendra/HackOnX-sub001/storage"

// RateTeamRequest carries the five criterion scores. Pointers distinguish a
// missing score from a literal zero so the handler can answer MissingScores.
type RateTeamRequest struct {
	Innovation   *int   `json:"innovation"`
	Technicality *int   `json:"technicality"`
	Presentation *int   `json:"presentation"`
	Feasibility  *int   `json:"feasibility"`
	Impact       *int   `json:"impact"`
	Comments     string `json:"comments,omitempty"`
}

// MissingScores lists the criteria absent from the request.
func (r *RateTeamRequest) MissingScores() []string {
	var missing []string
	if r.Innovation == nil {
		missing = append(missing, "innovation")
	}
	if r.Technicality == nil {
		missing = append(missing, "technicality")
	}
	if r.Presentation == nil {
		missing = append(missing, "presentation")
	}
	if r.Feasibility == nil {
		missing = append(missing, "feasibility")
	}
	if r.Impact == nil {
		missing = append(missing, "impact")
	}
	return missing
}

// OutOfRangeScores lists criteria outside the 1..10 scale. Only call after
// MissingScores came back empty.
func (r *RateTeamRequest) OutOfRangeScores() []string {
	var bad []string
	check := func(name string, v int) {
		if v < 1 || v > 10 {
			bad = append(bad, name)
		}
	}
	check("innovation", *r.Innovation)
	check("technicality", *r.Technicality)
	check("presentation", *r.Presentation)
	check("feasibility", *r.Feasibility)
	check("impact", *r.Impact)
	return bad
}

type RateTeamResponse struct {
	TeamID        string         `json:"teamId"`
	Rating        storage.Rating `json:"rating"`
	AverageRating float64        `json:"averageRating"`
}

type JudgeRatingResponse struct {
	TeamID string          `json:"teamId"`
	Rating *storage.Rating `json:"rating"`
}

type TeamRatingsResponse struct {
	TeamID        string           `json:"teamId"`
	TeamName      string           `json:"teamName"`
	Ratings       []storage.Rating `json:"ratings"`
	AverageRating float64          `json:"averageRating"`
}
