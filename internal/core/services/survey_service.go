package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/answers"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

const surveysPerPage = 10

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type surveyService struct {
	repo ports.SurveyRepository
}

func NewSurveyService(repo ports.SurveyRepository) ports.SurveyService {
	return &surveyService{
		repo: repo,
	}
}

func (s *surveyService) Create(ctx context.Context, input ports.CreateSurveyInput) (*domain.Survey, error) {
	if input.CreatorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateSurveyInput(&input); err != nil {
		return nil, err
	}

	surveyID := uuid.New()
	now := time.Now()

	survey := &domain.Survey{
		ID:          surveyID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		IsAnonymous: input.IsAnonymous,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatorID:   input.CreatorID,
		CreatedAt:   now,
	}

	for i, q := range input.Questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		survey.Questions = append(survey.Questions, domain.Question{
			ID:        uuid.New(),
			SurveyID:  surveyID,
			Text:      strings.TrimSpace(q.Text),
			Type:      q.Type,
			Required:  q.Required,
			Options:   options,
			MinLength: q.MinLength,
			MaxLength: q.MaxLength,
			MinDate:   q.MinDate,
			MaxDate:   q.MaxDate,
			MinTime:   q.MinTime,
			MaxTime:   q.MaxTime,
			Position:  i,
		})
	}

	if err := s.repo.Save(ctx, survey); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}

	return survey, nil
}

// validateSurveyInput trims option lists in place and reports every invalid field.
func validateSurveyInput(input *ports.CreateSurveyInput) error {
	var c answers.Collector

	if strings.TrimSpace(input.Title) == "" {
		c.Add("title", "title is required")
	}
	if input.StartDate.IsZero() {
		c.Add("start_date", "start date is required")
	}
	if input.EndDate.IsZero() {
		c.Add("end_date", "end date is required")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		c.Add("end_date", "end date must not be before start date")
	}
	if len(input.Questions) == 0 {
		c.Add("questions", "at least one question is required")
	}

	for i := range input.Questions {
		q := &input.Questions[i]
		field := fmt.Sprintf("questions[%d]", i)

		if strings.TrimSpace(q.Text) == "" {
			c.Add(field+".text", "question text is required")
		}
		if !q.Type.Known() {
			c.Add(field+".type", fmt.Sprintf("unsupported question type %q", q.Type))
		}

		q.Options = trimOptions(q.Options)
		if q.Type.HasOptions() && len(q.Options) == 0 {
			c.Add(field+".options", "at least one option is required")
		}

		if q.MinLength != nil && *q.MinLength < 0 {
			c.Add(field+".min_length", "min length must not be negative")
		}
		if q.MinLength != nil && q.MaxLength != nil && *q.MinLength > *q.MaxLength {
			c.Add(field+".max_length", "max length must not be less than min length")
		}
		checkBounds(&c, field, "date", dateLayout, q.MinDate, q.MaxDate)
		checkBounds(&c, field, "time", timeLayout, q.MinTime, q.MaxTime)
	}

	return c.Err()
}

func checkBounds(c *answers.Collector, field, name, layout string, min, max *string) {
	var lo, hi time.Time
	var err error
	if min != nil {
		if lo, err = time.Parse(layout, *min); err != nil {
			c.Add(fmt.Sprintf("%s.min_%s", field, name), fmt.Sprintf("invalid %s %q", name, *min))
			return
		}
	}
	if max != nil {
		if hi, err = time.Parse(layout, *max); err != nil {
			c.Add(fmt.Sprintf("%s.max_%s", field, name), fmt.Sprintf("invalid %s %q", name, *max))
			return
		}
	}
	if min != nil && max != nil && hi.Before(lo) {
		c.Add(fmt.Sprintf("%s.max_%s", field, name), fmt.Sprintf("max %s must not be before min %s", name, name))
	}
}

func trimOptions(options []string) []string {
	var out []string
	for _, opt := range options {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

func (s *surveyService) GetSurvey(ctx context.Context, id string) (*domain.Survey, error) {
	surveyID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidSurveyID
	}

	return s.repo.GetByID(ctx, surveyID)
}

func (s *surveyService) ListSurveys(ctx context.Context, input ports.ListSurveysInput) ([]*domain.SurveySummary, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * surveysPerPage

	return s.repo.ListVisible(ctx, input.UserID, surveysPerPage, offset, strings.TrimSpace(input.Query))
}

func (s *surveyService) Delete(ctx context.Context, id string, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}

	surveyID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidSurveyID
	}

	survey, err := s.repo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}
	if survey.CreatorID != userID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, surveyID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}
	return nil
}
