package types

import (
	"errors"
	"strings"
	"time"
)

// NotSpecified is stored for job title and company when the caller omits them.
const NotSpecified = "Not specified"

// ResumeProfile is the structured view of a résumé derived from its extracted text.
// It is created once per upload and never modified afterwards.
type ResumeProfile struct {
	RawText    string   `json:"rawText"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
}

// JobSource records which JobInput variant a JobContext was built from.
type JobSource string

const (
	// JobSourceStructured is a job described by explicit fields.
	JobSourceStructured JobSource = "structured"
	// JobSourceRawText is a job given as a bare block of text.
	JobSourceRawText JobSource = "raw"
)

// JobContext is the normalized job description attached to a session.
type JobContext struct {
	Description string    `json:"description"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Source      JobSource `json:"source"`
	AddedAt     time.Time `json:"addedAt"`
}

// JobInput is either a StructuredJob or a RawJobText.
type JobInput interface {
	jobInput()
}

// StructuredJob is a job description with optional title and company.
type StructuredJob struct {
	Description string
	Title       string
	Company     string
}

// RawJobText is a job description supplied as plain text with no metadata.
type RawJobText string

func (StructuredJob) jobInput() {}
func (RawJobText) jobInput()    {}

// ErrEmptyJobDescription is returned when a job input carries no description text.
var ErrEmptyJobDescription = errors.New("job description is empty")

// NewJobContext normalizes either job input shape into a JobContext.
func NewJobContext(in JobInput, addedAt time.Time) (*JobContext, error) {
	job := &JobContext{
		Title:   NotSpecified,
		Company: NotSpecified,
		AddedAt: addedAt.UTC(),
	}

	switch v := in.(type) {
	case StructuredJob:
		job.Description = v.Description
		job.Source = JobSourceStructured
		if strings.TrimSpace(v.Title) != "" {
			job.Title = v.Title
		}
		if strings.TrimSpace(v.Company) != "" {
			job.Company = v.Company
		}
	case RawJobText:
		job.Description = string(v)
		job.Source = JobSourceRawText
	default:
		return nil, ErrEmptyJobDescription
	}

	if strings.TrimSpace(job.Description) == "" {
		return nil, ErrEmptyJobDescription
	}
	return job, nil
}

// Session holds the context for one user's interview practice.
type Session struct {
	ID        string         `json:"id"`
	Resume    *ResumeProfile `json:"resume,omitempty"`
	Job       *JobContext    `json:"job,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// QuestionType labels an interview question for display and analytics.
type QuestionType string

// Question types in classification priority order.
const (
	QuestionIntroduction   QuestionType = "introduction"
	QuestionSelfAssessment QuestionType = "self-assessment"
	QuestionMotivation     QuestionType = "motivation"
	QuestionBehavioral     QuestionType = "behavioral"
	QuestionTechnical      QuestionType = "technical"
	QuestionGeneral        QuestionType = "general"
)

// AllQuestionTypes lists every QuestionType value.
var AllQuestionTypes = []QuestionType{
	QuestionIntroduction,
	QuestionSelfAssessment,
	QuestionMotivation,
	QuestionBehavioral,
	QuestionTechnical,
	QuestionGeneral,
}

// UsedContext reports which optional context blocks went into the prompt.
type UsedContext struct {
	HasResume         bool `json:"hasResume"`
	HasJobDescription bool `json:"hasJobDescription"`
}

// Answer is a generated answer. It is returned to the caller and never stored.
type Answer struct {
	Question     string       `json:"question"`
	AnswerText   string       `json:"answer"`
	QuestionType QuestionType `json:"questionType"`
	UsedContext  UsedContext  `json:"usedContext"`
}

// Transcription is the text recognized from a recorded question.
type Transcription struct {
	Text       string `json:"transcription"`
	IsQuestion bool   `json:"isQuestion"`
}
