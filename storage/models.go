package storage

import "time"

type Application struct {
	ID            string       `dynamodbav:"PK"`
	Email         string       `dynamodbav:"Email"`
	TeamName      string       `dynamodbav:"TeamName"`
	Type          string       `dynamodbav:"Type"`
	Members       []string     `dynamodbav:"Members"`
	Domain        string       `dynamodbav:"Domain"`
	Institution   string       `dynamodbav:"Institution"`
	Status        string       `dynamodbav:"Status"`
	PaymentStatus string       `dynamodbav:"PaymentStatus"`
	Remarks       string       `dynamodbav:"Remarks"`
	Attachments   []Attachment `dynamodbav:"Attachments"`
	Ratings       []Rating     `dynamodbav:"Ratings"`
	AverageRating float64      `dynamodbav:"AverageRating"`
	Version       int64        `dynamodbav:"Version"`
	CreatedAt     time.Time    `dynamodbav:"CreatedAt"`
	UpdatedAt     time.Time    `dynamodbav:"UpdatedAt"`
}

type Attachment struct {
	Kind        string    `dynamodbav:"Kind" json:"kind"`
	FileName    string    `dynamodbav:"FileName" json:"fileName"`
	ContentType string    `dynamodbav:"ContentType" json:"contentType"`
	Size        int64     `dynamodbav:"Size" json:"size"`
	ObjectKey   string    `dynamodbav:"ObjectKey" json:"-"`
	UploadedAt  time.Time `dynamodbav:"UploadedAt" json:"uploadedAt"`
}

type Rating struct {
	JudgeID      string    `dynamodbav:"JudgeID" json:"judgeId"`
	Innovation   int       `dynamodbav:"Innovation" json:"innovation"`
	Technicality int       `dynamodbav:"Technicality" json:"technicality"`
	Presentation int       `dynamodbav:"Presentation" json:"presentation"`
	Feasibility  int       `dynamodbav:"Feasibility" json:"feasibility"`
	Impact       int       `dynamodbav:"Impact" json:"impact"`
	Comments     string    `dynamodbav:"Comments" json:"comments,omitempty"`
	TotalScore   float64   `dynamodbav:"TotalScore" json:"totalScore"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type Account struct {
	Email        string    `dynamodbav:"PK"`
	Name         string    `dynamodbav:"Name"`
	Role         string    `dynamodbav:"Role"`
	PasswordHash string    `dynamodbav:"PasswordHash"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt"`
}
