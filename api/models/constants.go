package models

type Role string

const (
	RoleJudge   Role = "judge"
	RoleManager Role = "manager"
)

var ValidRoles = map[Role]string{
	RoleJudge:   "judge",
	RoleManager: "manager",
}

type ApplicationType string

const (
	TypeIndividual ApplicationType = "individual"
	TypeTeam       ApplicationType = "team"
)

var ValidApplicationTypes = map[ApplicationType]string{
	TypeIndividual: "individual",
	TypeTeam:       "team",
}

var ValidDomains = map[string]string{
	"web":        "Web Development",
	"mobile":     "Mobile Development",
	"ai_ml":      "AI / Machine Learning",
	"blockchain": "Blockchain",
	"iot":        "Internet of Things",
	"open":       "Open Innovation",
}

type AttachmentKind string

const (
	AttachmentIDCard       AttachmentKind = "id_card"
	AttachmentProposal     AttachmentKind = "proposal"
	AttachmentPaymentProof AttachmentKind = "payment_proof"
)

var ValidAttachmentKinds = map[AttachmentKind]string{
	AttachmentIDCard:       "id_card",
	AttachmentProposal:     "proposal",
	AttachmentPaymentProof: "payment_proof",
}

// MaxExtraMembers caps the roster at a leader plus three members.
const MaxExtraMembers = 3
