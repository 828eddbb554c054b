package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"prepmate/internal/bootstrap/logging"
	domainfeedback "prepmate/internal/domain/feedback"
	"prepmate/internal/errs"
	"prepmate/internal/ports"
	feedbackusecase "prepmate/internal/usecase/feedback"
	questionsusecase "prepmate/internal/usecase/questions"
)

type utterancePayload struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type feedbackRequest struct {
	InterviewID string             `json:"interview_id"`
	Transcript  []utterancePayload `json:"transcript"`
	Async       bool               `json:"async"`
}

type feedbackResponse struct {
	DetailsID uint64                  `json:"details_id"`
	Feedback  []feedbackusecase.Item  `json:"feedback"`
	Summary   feedbackusecase.Summary `json:"summary"`
}

// handleFeedback runs the full pipeline synchronously, or hands the job to
// the dispatcher when async is requested. The async path only acknowledges
// acceptance; completion is best-effort.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InterviewID == "" {
		writeError(w, http.StatusBadRequest, "interview_id is required")
		return
	}

	if req.Async {
		job := ports.FeedbackJob{
			JobID:       uuid.NewString(),
			InterviewID: req.InterviewID,
		}
		for _, u := range req.Transcript {
			job.Transcript = append(job.Transcript, ports.JobUtterance(u))
		}
		if err := s.dispatcher.Dispatch(r.Context(), job); err != nil {
			logError(r, "dispatch feedback job", err)
			writeError(w, http.StatusInternalServerError, "could not accept feedback job")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.JobID})
		return
	}

	transcript := make([]domainfeedback.Utterance, 0, len(req.Transcript))
	for _, u := range req.Transcript {
		transcript = append(transcript, domainfeedback.Utterance{
			Speaker: domainfeedback.ParseSpeaker(u.Speaker),
			Text:    u.Text,
		})
	}

	result, err := s.feedback.GenerateFeedback(r.Context(), feedbackusecase.GenerateFeedbackInput{
		InterviewID: req.InterviewID,
		Transcript:  transcript,
	})
	if err != nil {
		logError(r, "generate feedback", err)
		switch {
		case errors.Is(err, feedbackusecase.ErrUpstreamModel):
			writeError(w, http.StatusBadGateway, "feedback model request failed")
		case errors.Is(err, feedbackusecase.ErrPersistence):
			writeError(w, http.StatusInternalServerError, "feedback could not be stored")
		default:
			writeError(w, http.StatusInternalServerError, "feedback generation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, feedbackResponse{
		DetailsID: result.DetailsID,
		Feedback:  result.Items,
		Summary:   result.Summary,
	})
}

type generateRequest struct {
	Transcript []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"transcript"`
}

// handleGenerate exposes the raw prompt-and-complete step without parsing or
// persistence.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchanges := make([]domainfeedback.Exchange, 0, len(req.Transcript))
	for _, e := range req.Transcript {
		exchanges = append(exchanges, domainfeedback.Exchange{Question: e.Question, Answer: e.Answer})
	}

	raw, err := s.feedback.Generate(r.Context(), exchanges)
	if err != nil {
		logError(r, "generate raw feedback", err)
		writeError(w, http.StatusBadGateway, "feedback model request failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"data": raw})
}

type createInterviewRequest struct {
	UserID  string                   `json:"user_id"`
	Type    string                   `json:"type"`
	Profile questionsusecase.Profile `json:"profile"`
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	interview, err := s.questions.CreateInterview(r.Context(), questionsusecase.CreateInterviewInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Profile: req.Profile,
	})
	if err != nil {
		logError(r, "create interview", err)
		writeError(w, http.StatusInternalServerError, "could not create interview")
		return
	}
	writeJSON(w, http.StatusCreated, interview)
}

type interviewStatusResponse struct {
	Interview ports.Interview          `json:"interview"`
	Runs      []ports.InterviewDetails `json:"runs"`
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interviewID")

	interview, err := s.feedback.GetInterview(r.Context(), interviewID)
	if err != nil {
		if errors.Is(err, ports.ErrInterviewNotFound) {
			writeError(w, http.StatusNotFound, "interview not found")
			return
		}
		logError(r, "get interview", err)
		writeError(w, http.StatusInternalServerError, "could not load interview")
		return
	}

	runs, err := s.feedback.ListRuns(r.Context(), interviewID)
	if err != nil {
		logError(r, "list feedback runs", err)
		writeError(w, http.StatusInternalServerError, "could not load feedback runs")
		return
	}

	writeJSON(w, http.StatusOK, interviewStatusResponse{Interview: interview, Runs: runs})
}

func (s *Server) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.questions.GetInterviewQuestions(r.Context(), chi.URLParam(r, "interviewID"))
	if err != nil {
		if errors.Is(err, ports.ErrInterviewNotFound) {
			writeError(w, http.StatusNotFound, "interview questions not found")
			return
		}
		logError(r, "get interview questions", err)
		writeError(w, http.StatusInternalServerError, "could not load questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"questions": questions})
}

func (s *Server) handlePersonalQuestions(w http.ResponseWriter, r *http.Request) {
	var profile questionsusecase.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := s.questions.GeneratePersonal(r.Context(), profile)
	if err != nil {
		logError(r, "generate personal questions", err)
		writeError(w, http.StatusBadGateway, "could not generate questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"questions": questions})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func logError(r *http.Request, msg string, err error) {
	logging.Error(r.Context(), msg,
		slog.String("path", r.URL.Path),
		slog.Any("err", errs.Loggable(err)),
	)
}
