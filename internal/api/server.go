package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"prepmate/internal/ports"
	feedbackusecase "prepmate/internal/usecase/feedback"
	questionsusecase "prepmate/internal/usecase/questions"
)

// Server is the thin HTTP boundary over the usecases. Authorization and
// session handling live in front of it; handlers trust caller-supplied ids.
type Server struct {
	feedback   *feedbackusecase.Service
	questions  *questionsusecase.Service
	dispatcher ports.Dispatcher
}

func NewServer(feedback *feedbackusecase.Service, questions *questionsusecase.Service, dispatcher ports.Dispatcher) *Server {
	return &Server{
		feedback:   feedback,
		questions:  questions,
		dispatcher: dispatcher,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/feedback", s.handleFeedback)
		r.Post("/generate", s.handleGenerate)
		r.Post("/interviews", s.handleCreateInterview)
		r.Get("/interviews/{interviewID}", s.handleGetInterview)
		r.Get("/interviews/{interviewID}/questions", s.handleGetQuestions)
		r.Post("/questions/personal", s.handlePersonalQuestions)
	})

	return r
}
