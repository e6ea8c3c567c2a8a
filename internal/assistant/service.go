// Package assistant wires résumé extraction, job context, transcription and
// answer generation into the operations exposed by the server and CLI.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/interview-assistant/internal/classify"
	"github.com/jonathan/interview-assistant/internal/composer"
	"github.com/jonathan/interview-assistant/internal/fetch"
	"github.com/jonathan/interview-assistant/internal/ingestion"
	"github.com/jonathan/interview-assistant/internal/llm"
	"github.com/jonathan/interview-assistant/internal/resume"
	"github.com/jonathan/interview-assistant/internal/session"
	"github.com/jonathan/interview-assistant/internal/speech"
	"github.com/jonathan/interview-assistant/internal/telemetry"
	"github.com/jonathan/interview-assistant/internal/types"
)

// AnswerTier is the model tier used for answer generation.
const AnswerTier = llm.TierStandard

// Options holds the Service's collaborators. Client and Metrics may be nil;
// without a Client, transcription and answer generation fail with CompletionError.
type Options struct {
	Store        session.Store
	Client       llm.Client
	Metrics      *telemetry.Metrics
	FetchOptions *fetch.Options
}

// Service implements the assistant's operations over a session store.
type Service struct {
	store       session.Store
	client      llm.Client
	transcriber *speech.Transcriber
	metrics     *telemetry.Metrics
	fetchOpts   *fetch.Options
	now         func() time.Time
	newID       func() string
}

// New creates a Service. A nil Store gets an in-memory store.
func New(opts Options) *Service {
	store := opts.Store
	if store == nil {
		store = session.NewMemoryStore(0)
	}

	s := &Service{
		store:     store,
		client:    opts.Client,
		metrics:   opts.Metrics,
		fetchOpts: opts.FetchOptions,
		now:       time.Now,
		newID:     session.NewID,
	}
	if opts.Client != nil {
		s.transcriber = speech.NewTranscriber(opts.Client)
	}
	return s
}

// UploadResume extracts a résumé document and stores the profile. An empty
// sessionID starts a new session.
func (s *Service) UploadResume(ctx context.Context, sessionID string, doc *ingestion.Document) (*types.Session, error) {
	if doc == nil || len(doc.Data) == 0 {
		return nil, &ValidationError{Field: "resume", Message: "No file uploaded", Required: []string{"resume"}}
	}

	text, err := ingestion.ExtractText(doc)
	if err != nil {
		var unsupported *ingestion.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			return nil, &ValidationError{Field: "resume", Message: unsupported.Error()}
		}
		s.metrics.CollaboratorFailed(telemetry.CollaboratorExtraction)
		return nil, &ExtractionError{Message: "Failed to parse resume", Cause: err}
	}

	profile := resume.Extract(text)

	if sessionID == "" {
		sessionID = s.newID()
	}
	sess, err := s.store.UpsertResume(ctx, sessionID, profile)
	if err != nil {
		s.metrics.CollaboratorFailed(telemetry.CollaboratorSessionStore)
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	s.metrics.ResumeUploaded()
	log.Printf("[resume] session %s: %d skills, %d experience, %d education",
		sessionID, len(profile.Skills), len(profile.Experience), len(profile.Education))
	return sess, nil
}

// GetResume returns the résumé profile stored for a session.
func (s *Service) GetResume(ctx context.Context, sessionID string) (*types.ResumeProfile, error) {
	sess, err := s.lookup(ctx, sessionID, "resume")
	if err != nil {
		return nil, err
	}
	if sess.Resume == nil {
		return nil, &NotFoundError{What: "resume", SessionID: sessionID}
	}
	return sess.Resume, nil
}

// AddJob normalizes a job description and attaches it to a session, creating
// the session if it does not exist. When only JobURL is set, the posting is fetched.
func (s *Service) AddJob(ctx context.Context, req *types.AddJobRequest) (*types.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	var in types.JobInput = types.StructuredJob{
		Description: req.JobDescription,
		Title:       req.JobTitle,
		Company:     req.Company,
	}

	if strings.TrimSpace(req.JobDescription) == "" && req.JobURL != "" {
		posting, err := ingestion.IngestJobURL(ctx, req.JobURL, s.fetchOpts)
		if err != nil {
			s.metrics.CollaboratorFailed(telemetry.CollaboratorJobFetch)
			return nil, &ExtractionError{Message: "Failed to fetch job posting", Cause: err}
		}
		log.Printf("[job] session %s: fetched %s (sha256 %.12s)", req.SessionID, posting.URL, posting.Hash)
		in = types.StructuredJob{Description: posting.Text, Title: req.JobTitle, Company: req.Company}
		if req.JobTitle == "" && req.Company == "" {
			in = types.RawJobText(posting.Text)
		}
	}

	return s.SetJob(ctx, req.SessionID, in)
}

// SetJob stores an already-built job input on a session.
func (s *Service) SetJob(ctx context.Context, sessionID string, in types.JobInput) (*types.Session, error) {
	job, err := types.NewJobContext(in, s.now())
	if err != nil {
		return nil, &ValidationError{Field: "jobDescription", Message: "jobDescription is required", Required: []string{"jobDescription"}}
	}

	sess, err := s.store.UpsertJob(ctx, sessionID, job)
	if err != nil {
		s.metrics.CollaboratorFailed(telemetry.CollaboratorSessionStore)
		return nil, fmt.Errorf("failed to store job: %w", err)
	}

	s.metrics.JobAdded(string(job.Source))
	log.Printf("[job] session %s: %q at %q (%s)", sessionID, job.Title, job.Company, job.Source)
	return sess, nil
}

// GetJob returns the job context stored for a session.
func (s *Service) GetJob(ctx context.Context, sessionID string) (*types.JobContext, error) {
	sess, err := s.lookup(ctx, sessionID, "job")
	if err != nil {
		return nil, err
	}
	if sess.Job == nil {
		return nil, &NotFoundError{What: "job", SessionID: sessionID}
	}
	return sess.Job, nil
}

// Transcribe converts a recorded question to text.
func (s *Service) Transcribe(ctx context.Context, audio []byte, mimeType string) (*types.Transcription, error) {
	if len(audio) == 0 {
		return nil, &ValidationError{Field: "audio", Message: "No audio file uploaded", Required: []string{"audio"}}
	}
	if s.transcriber == nil {
		return nil, &ExtractionError{Message: "Failed to transcribe audio", Cause: errors.New("transcription service not configured")}
	}

	result, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		s.metrics.CollaboratorFailed(telemetry.CollaboratorTranscription)
		return nil, &ExtractionError{Message: "Failed to transcribe audio", Cause: err}
	}
	return result, nil
}

// GenerateAnswer answers a question using whatever context the session holds.
// An unknown or empty session id answers without context.
func (s *Service) GenerateAnswer(ctx context.Context, req *types.GenerateAnswerRequest) (*types.Answer, error) {
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	var (
		profile *types.ResumeProfile
		job     *types.JobContext
	)
	if req.SessionID != "" {
		sess, err := s.store.Get(ctx, req.SessionID)
		switch {
		case err == nil:
			profile, job = sess.Resume, sess.Job
		case errors.Is(err, session.ErrNotFound):
			log.Printf("[answer] session %s not found, answering without context", req.SessionID)
		default:
			s.metrics.CollaboratorFailed(telemetry.CollaboratorSessionStore)
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}

	return s.Answer(ctx, req.Question, profile, job)
}

// Answer composes a prompt from the given context, calls the completion
// service and labels the question. Either context may be nil.
func (s *Service) Answer(ctx context.Context, question string, profile *types.ResumeProfile, job *types.JobContext) (*types.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &ValidationError{Field: "question", Message: "Question is required", Required: []string{"question"}}
	}
	if s.client == nil {
		return nil, &CompletionError{Message: "Failed to generate answer", Cause: errors.New("completion service not configured")}
	}

	prompt := composer.Compose(question, profile, job)
	questionType := classify.Classify(question)

	text, err := s.client.GenerateContent(ctx, prompt, AnswerTier)
	if err != nil {
		s.metrics.CollaboratorFailed(telemetry.CollaboratorCompletion)
		return nil, &CompletionError{Message: "Failed to generate answer", Cause: err}
	}

	s.metrics.QuestionAnswered(string(questionType))
	log.Printf("[answer] type=%s resume=%t job=%t", questionType, profile != nil, job != nil)

	return &types.Answer{
		Question:     question,
		AnswerText:   strings.TrimSpace(text),
		QuestionType: questionType,
		UsedContext: types.UsedContext{
			HasResume:         profile != nil,
			HasJobDescription: job != nil,
		},
	}, nil
}

// Close releases the session store.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) lookup(ctx context.Context, sessionID, what string) (*types.Session, error) {
	if sessionID == "" {
		return nil, &ValidationError{Field: "sessionId", Message: "sessionId is required", Required: []string{"sessionId"}}
	}
	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, &NotFoundError{What: what, SessionID: sessionID}
	}
	if err != nil {
		s.metrics.CollaboratorFailed(telemetry.CollaboratorSessionStore)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}
