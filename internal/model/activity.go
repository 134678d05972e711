package model

// Practice 单次的专业实践记录
// swagger:model
type Practice struct {
	ID               string `json:"id"`
	TeacherID        string `json:"teacherId"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Date             string `json:"date"`
	ProofURL         string `json:"proofUrl,omitempty"`
	ExtractedContent string `json:"extractedContent,omitempty"`
}

func (p Practice) RecordID() string { return p.ID }

func (p Practice) OwnerID() string { return p.TeacherID }

func (p Practice) HasProof() bool { return p.ProofURL != "" }

// Seminar 跨日期的研讨会记录
// swagger:model
type Seminar struct {
	ID               string `json:"id"`
	TeacherID        string `json:"teacherId"`
	Title            string `json:"title"`
	FromDate         string `json:"fromDate"`
	ToDate           string `json:"toDate"`
	ProofURL         string `json:"proofUrl,omitempty"`
	ExtractedContent string `json:"extractedContent,omitempty"`
}

func (s Seminar) RecordID() string { return s.ID }

func (s Seminar) OwnerID() string { return s.TeacherID }

func (s Seminar) HasProof() bool { return s.ProofURL != "" }

// ActivityKind distinguishes the two activity record types.
type ActivityKind string

const (
	KindPractice ActivityKind = "practice"
	KindSeminar  ActivityKind = "seminar"
)
