package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jonathan/interview-assistant/internal/assistant"
	"github.com/jonathan/interview-assistant/internal/ingestion"
	"github.com/jonathan/interview-assistant/internal/types"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Multipart parsing bounds: the body may exceed the file limit by the form
// framing, and parts beyond the memory budget spill to temporary files.
const (
	multipartOverheadBytes = 1 << 20
	multipartMemoryBytes   = 8 << 20
)

// maxPreviewSkills is how many skills the upload response echoes back.
const maxPreviewSkills = 10

// ResumeUploadResponse is the body of a successful résumé upload.
type ResumeUploadResponse struct {
	Success   bool          `json:"success"`
	SessionID string        `json:"sessionId"`
	Message   string        `json:"message"`
	Data      ResumeSummary `json:"data"`
}

// ResumeSummary previews what was extracted from an uploaded résumé.
type ResumeSummary struct {
	Skills          []string `json:"skills"`
	ExperienceCount int      `json:"experienceCount"`
	EducationCount  int      `json:"educationCount"`
}

// JobAddResponse is the body of a successful job add.
type JobAddResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    JobSummary `json:"data"`
}

// JobSummary echoes the stored job's identifying fields.
type JobSummary struct {
	SessionID string `json:"sessionId"`
	JobTitle  string `json:"jobTitle"`
	Company   string `json:"company"`
}

// ContextResponse wraps a stored résumé profile or job context.
type ContextResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// TranscriptionResponse is the body of a successful transcription.
type TranscriptionResponse struct {
	Success bool `json:"success"`
	types.Transcription
	Timestamp string `json:"timestamp"`
}

// AnswerResponse is the body of a successful answer generation.
type AnswerResponse struct {
	Success bool `json:"success"`
	types.Answer
	Timestamp string `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// handleResumeUpload handles POST /api/resume/upload
func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to process resume"

	data, header, err := s.readUpload(w, r, "resume")
	if err != nil {
		s.handleError(w, uploadError(err, "resume", "No file uploaded"), failure)
		return
	}
	log.Printf("[resume] Received resume file: %s (%d bytes)", header.Filename, len(data))

	doc := &ingestion.Document{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}
	sess, err := s.assistant.UploadResume(r.Context(), r.FormValue("sessionId"), doc)
	if err != nil {
		s.handleError(w, err, failure)
		return
	}

	skills := sess.Resume.Skills
	if len(skills) > maxPreviewSkills {
		skills = skills[:maxPreviewSkills]
	}
	if skills == nil {
		skills = []string{}
	}

	s.jsonResponse(w, http.StatusOK, ResumeUploadResponse{
		Success:   true,
		SessionID: sess.ID,
		Message:   "Resume uploaded and parsed successfully",
		Data: ResumeSummary{
			Skills:          skills,
			ExperienceCount: len(sess.Resume.Experience),
			EducationCount:  len(sess.Resume.Education),
		},
	})
}

// handleResumeContext handles GET /api/resume/context/{sessionId}
func (s *Server) handleResumeContext(w http.ResponseWriter, r *http.Request) {
	profile, err := s.assistant.GetResume(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		s.handleError(w, err, "Failed to load resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, ContextResponse{Success: true, Data: profile})
}

// handleJobAdd handles POST /api/job/add
func (s *Server) handleJobAdd(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to add job description"

	var req types.AddJobRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, err, failure)
		return
	}

	sess, err := s.assistant.AddJob(r.Context(), &req)
	if err != nil {
		var validation *assistant.ValidationError
		if errors.As(err, &validation) && validation.Field != "jobUrl" {
			err = &assistant.ValidationError{
				Field:    validation.Field,
				Message:  "Missing required fields",
				Required: []string{"sessionId", "jobDescription"},
			}
		}
		s.handleError(w, err, failure)
		return
	}

	s.jsonResponse(w, http.StatusOK, JobAddResponse{
		Success: true,
		Message: "Job description added successfully",
		Data: JobSummary{
			SessionID: sess.ID,
			JobTitle:  sess.Job.Title,
			Company:   sess.Job.Company,
		},
	})
}

// handleJobContext handles GET /api/job/context/{sessionId}
func (s *Server) handleJobContext(w http.ResponseWriter, r *http.Request) {
	job, err := s.assistant.GetJob(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		s.handleError(w, err, "Failed to load job description")
		return
	}
	s.jsonResponse(w, http.StatusOK, ContextResponse{Success: true, Data: job})
}

// handleTranscribe handles POST /api/speech/transcribe
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to transcribe audio"

	data, header, err := s.readUpload(w, r, "audio")
	if err != nil {
		s.handleError(w, uploadError(err, "audio", "No audio file uploaded"), failure)
		return
	}

	result, err := s.assistant.Transcribe(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		s.handleError(w, err, failure)
		return
	}

	s.jsonResponse(w, http.StatusOK, TranscriptionResponse{
		Success:       true,
		Transcription: *result,
		Timestamp:     timestamp(),
	})
}

// handleAnswerGenerate handles POST /api/answer/generate
func (s *Server) handleAnswerGenerate(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to generate answer"

	var req types.GenerateAnswerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, err, failure)
		return
	}

	answer, err := s.assistant.GenerateAnswer(r.Context(), &req)
	if err != nil {
		var validation *assistant.ValidationError
		if errors.As(err, &validation) && validation.Field == "question" {
			err = &assistant.ValidationError{Field: "question", Message: "Question is required"}
		}
		s.handleError(w, err, failure)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnswerResponse{
		Success:   true,
		Answer:    *answer,
		Timestamp: timestamp(),
	})
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &assistant.ValidationError{Field: "body", Message: "Invalid JSON body"}
	}
	return nil
}

// readUpload parses a multipart form and returns the named file's bytes.
// Temporary files are removed before returning.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverheadBytes)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("[upload] Error removing temporary files: %v", err)
		}
	}()

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		return nil, nil, &http.MaxBytesError{Limit: s.maxUploadBytes}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return data, header, nil
}

// uploadError keeps size violations as-is and reports anything else as a missing file.
func uploadError(err error, field, message string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return &assistant.ValidationError{Field: field, Message: message, Required: []string{field}}
}
