package questions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/bootstrap/logging"
	"prepmate/internal/errs"
	"prepmate/internal/ports"
)

const (
	questionCount          = 5
	questionTemperature    = 0.8
	questionCacheTTL       = 24 * time.Hour
	questionCacheKeyPrefix = "questions:"
)

// Service generates personalized interview questions from a profile snapshot
// and creates interview records carrying them.
type Service struct {
	repo      ports.InterviewRepository
	uow       ports.UnitOfWork
	cache     ports.Cache
	completer ports.Completer
}

func NewService(repo ports.InterviewRepository, uow ports.UnitOfWork, cache ports.Cache, completer ports.Completer) *Service {
	return &Service{
		repo:      repo,
		uow:       uow,
		cache:     cache,
		completer: completer,
	}
}

// GeneratePersonal produces up to questionCount questions tailored to the
// profile. Results are cached by profile digest so an unchanged profile does
// not trigger another model call.
func (s *Service) GeneratePersonal(ctx context.Context, profile Profile) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.completer == nil {
		return nil, errors.New("completer is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.questions"))

	cacheKey, haveKey := profileCacheKey(profile)
	if haveKey && s.cache != nil {
		if cached, found, err := s.cache.Get(logCtx, cacheKey); err == nil && found {
			var questions []string
			if err := json.Unmarshal([]byte(cached), &questions); err == nil {
				logging.Info(logCtx, "questions served from cache", slog.Int("count", len(questions)))
				return questions, nil
			}
		}
	}

	raw, err := s.completer.Complete(logCtx, ports.CompletionRequest{
		System:      systemInstruction,
		Prompt:      BuildQuestionsPrompt(profile),
		Temperature: questionTemperature,
	})
	if err != nil {
		return nil, errs.Wrap(err, "generate personal questions")
	}

	questions := ParseQuestionLines(raw)
	logging.Info(logCtx, "questions generated", slog.Int("count", len(questions)))

	if haveKey && s.cache != nil && len(questions) > 0 {
		if encoded, err := json.Marshal(questions); err == nil {
			if err := s.cache.Set(logCtx, cacheKey, string(encoded), questionCacheTTL); err != nil {
				logging.Warn(logCtx, "question cache write failed", slog.Any("err", errs.Loggable(err)))
			}
		}
	}
	return questions, nil
}

type CreateInterviewInput struct {
	UserID  string
	Type    string
	Profile Profile
}

// CreateInterview generates questions for the profile and stores a new
// interview carrying them, as one transactional write.
func (s *Service) CreateInterview(ctx context.Context, input CreateInterviewInput) (ports.Interview, error) {
	if ctx == nil {
		return ports.Interview{}, errors.New("context is required")
	}
	if s.repo == nil {
		return ports.Interview{}, errors.New("interview repository is required")
	}
	if s.uow == nil {
		return ports.Interview{}, errors.New("unit of work is required")
	}

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return ports.Interview{}, errors.New("user id is required")
	}
	interviewType := strings.TrimSpace(input.Type)
	if interviewType == "" {
		interviewType = "personal"
	}

	questions, err := s.GeneratePersonal(ctx, input.Profile)
	if err != nil {
		return ports.Interview{}, err
	}
	encoded, err := json.Marshal(questions)
	if err != nil {
		return ports.Interview{}, errs.Wrap(err, "encode questions")
	}

	interview := ports.Interview{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          interviewType,
		QuestionsJSON: string(encoded),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.repo.CreateInterview(txCtx, interview)
		if createErr != nil {
			return createErr
		}
		interview = created
		return nil
	}); err != nil {
		return ports.Interview{}, errs.Wrap(err, "create interview")
	}
	return interview, nil
}

// GetInterviewQuestions returns the stored question list for an interview.
func (s *Service) GetInterviewQuestions(ctx context.Context, interviewID string) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if s.repo == nil {
		return nil, errors.New("interview repository is required")
	}

	interview, err := s.repo.GetInterview(ctx, strings.TrimSpace(interviewID))
	if err != nil {
		return nil, err
	}

	var questions []string
	if err := json.Unmarshal([]byte(interview.QuestionsJSON), &questions); err != nil {
		return nil, errs.Wrap(err, "decode stored questions")
	}
	return questions, nil
}

var numberedPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ParseQuestionLines keeps lines that look like questions (ending in "?" or
// numbered), strips list numbering, and caps the result at questionCount.
// Mirrors the tolerant line filter the prompt's "array of strings" request
// actually gets back from the model.
func ParseQuestionLines(raw string) []string {
	out := make([]string, 0, questionCount)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, "?") && !numberedPrefix.MatchString(line) {
			continue
		}
		out = append(out, numberedPrefix.ReplaceAllString(line, ""))
		if len(out) == questionCount {
			break
		}
	}
	return out
}

func profileCacheKey(profile Profile) (string, bool) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return "", false
	}
	digest := sha256.Sum256(encoded)
	return questionCacheKeyPrefix + hex.EncodeToString(digest[:8]), true
}
