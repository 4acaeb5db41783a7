package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type summaryService struct {
	surveyRepo   ports.SurveyRepository
	responseRepo ports.ResponseRepository
	resultsRepo  ports.ResultsRepository
}

func NewSummaryService(surveyRepo ports.SurveyRepository, responseRepo ports.ResponseRepository, resultsRepo ports.ResultsRepository) ports.SummaryService {
	return &summaryService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		resultsRepo:  resultsRepo,
	}
}

// SummarizeAllResults recomputes the option counts of every survey and
// replaces the stored tallies, one goroutine per survey.
func (s *summaryService) SummarizeAllResults(ctx context.Context) error {
	surveys, err := s.surveyRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all surveys: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(surveys))

	for _, survey := range surveys {
		wg.Add(1)
		go func(sv *domain.Survey) {
			defer wg.Done()
			if err := s.summarize(ctx, sv); err != nil {
				errChan <- fmt.Errorf("failed to summarize survey %s: %w", sv.ID, err)
			}
		}(survey)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *summaryService) summarize(ctx context.Context, survey *domain.Survey) error {
	if len(survey.Questions) == 0 {
		full, err := s.surveyRepo.GetByID(ctx, survey.ID)
		if err != nil {
			return err
		}
		survey = full
	}

	responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return err
	}

	results := tallyResponses(survey, responses)
	return s.resultsRepo.ReplaceTallies(ctx, survey.ID, resultsToTallies(results, time.Now()))
}
