package models

import (
	"sort"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/storage"
)

const criteriaCount = 5

// NewRating builds a judge's rating with the total fixed at creation time:
// the plain arithmetic mean of the five criteria, no weighting.
func NewRating(judgeID string, innovation, technicality, presentation, feasibility, impact int, comments string) storage.Rating {
	total := float64(innovation+technicality+presentation+feasibility+impact) / criteriaCount
	return storage.Rating{
		JudgeID:      judgeID,
		Innovation:   innovation,
		Technicality: technicality,
		Presentation: presentation,
		Feasibility:  feasibility,
		Impact:       impact,
		Comments:     comments,
		TotalScore:   total,
		CreatedAt:    time.Now().UTC(),
	}
}

// UpsertRating replaces the judge's previous rating if one exists, otherwise
// appends. Returns true when an existing rating was replaced. The application's
// average is recomputed either way.
func UpsertRating(app *storage.Application, rating storage.Rating) bool {
	replaced := false
	for i, existing := range app.Ratings {
		if existing.JudgeID == rating.JudgeID {
			app.Ratings[i] = rating
			replaced = true
			break
		}
	}
	if !replaced {
		app.Ratings = append(app.Ratings, rating)
	}
	app.AverageRating = AverageRating(app.Ratings)
	return replaced
}

// AverageRating is the mean of the ratings' total scores, zero for no ratings.
func AverageRating(ratings []storage.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r.TotalScore
	}
	return sum / float64(len(ratings))
}

// FindRatingByJudge returns the judge's rating on the application, or nil.
func FindRatingByJudge(app *storage.Application, judgeID string) *storage.Rating {
	for i := range app.Ratings {
		if app.Ratings[i].JudgeID == judgeID {
			return &app.Ratings[i]
		}
	}
	return nil
}

type CriteriaAverages struct {
	Innovation   float64 `json:"innovation"`
	Technicality float64 `json:"technicality"`
	Presentation float64 `json:"presentation"`
	Feasibility  float64 `json:"feasibility"`
	Impact       float64 `json:"impact"`
}

type LeaderboardEntry struct {
	Rank             int              `json:"rank"`
	TeamID           string           `json:"teamId"`
	TeamName         string           `json:"teamName"`
	Domain           string           `json:"domain"`
	Institution      string           `json:"institution"`
	MemberCount      int              `json:"memberCount"`
	AverageRating    float64          `json:"averageRating"`
	JudgeCount       int              `json:"judgeCount"`
	CriteriaAverages CriteriaAverages `json:"criteriaAverages"`
}

type LeaderboardResponse struct {
	Count int                `json:"count"`
	Data  []LeaderboardEntry `json:"data"`
}

// BuildLeaderboard ranks shortlisted applications that carry at least one
// rating. Order is average rating descending, team id ascending on ties, so
// repeated calls over the same data always produce the same board.
func BuildLeaderboard(apps []*storage.Application) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(apps))
	for _, app := range apps {
		if ApplicationStatus(app.Status) != StatusShortlisted || len(app.Ratings) == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			TeamID:           app.ID,
			TeamName:         app.TeamName,
			Domain:           app.Domain,
			Institution:      app.Institution,
			MemberCount:      1 + len(app.Members),
			AverageRating:    AverageRating(app.Ratings),
			JudgeCount:       len(app.Ratings),
			CriteriaAverages: criteriaAverages(app.Ratings),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AverageRating != entries[j].AverageRating {
			return entries[i].AverageRating > entries[j].AverageRating
		}
		return entries[i].TeamID < entries[j].TeamID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func criteriaAverages(ratings []storage.Rating) CriteriaAverages {
	var sums CriteriaAverages
	for _, r := range ratings {
		sums.Innovation += float64(r.Innovation)
		sums.Technicality += float64(r.Technicality)
		sums.Presentation += float64(r.Presentation)
		sums.Feasibility += float64(r.Feasibility)
		sums.Impact += float64(r.Impact)
	}
	n := float64(len(ratings))
	return CriteriaAverages{
		Innovation:   sums.Innovation / n,
		Technicality: sums.Technicality / n,
		Presentation: sums.Presentation / n,
		Feasibility:  sums.Feasibility / n,
		Impact:       sums.Impact / n,
	}
}
