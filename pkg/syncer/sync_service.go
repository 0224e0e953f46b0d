package syncer

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/mealdb"
	"recipe-hub/pkg/recipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Strategy thresholds: bulk-import while the store is nearly empty, then
// diversify via category/area partitions once a base corpus exists.
const (
	quickThreshold  = 100
	randomThreshold = 500

	quickTarget    = 50
	randomTarget   = 30
	categoryTarget = 20

	maxCategories = 3
	maxAreas      = 2
)

type (
	SyncService interface {
		SyncRandom(ctx context.Context, count int) (domain.SyncReport, error)
		SyncByCategory(ctx context.Context, target int) (domain.SyncReport, error)
		SyncByArea(ctx context.Context, target int) (domain.SyncReport, error)
		ChooseStrategy(currentCount int64) (string, int)
		SmartSync(ctx context.Context) (domain.SyncReport, error)
		GetRecentRuns(ctx context.Context, limit int) ([]*entities.SyncRun, error)
	}

	syncService struct {
		source            mealdb.Source
		recipeRepository  recipe.RecipeRepository
		syncRunRepository SyncRunRepository
		partitionDelay    time.Duration
	}
)

func NewSyncService(
	source mealdb.Source,
	recipeRepository recipe.RecipeRepository,
	syncRunRepository SyncRunRepository,
	partitionDelay time.Duration,
) SyncService {
	return &syncService{
		source:            source,
		recipeRepository:  recipeRepository,
		syncRunRepository: syncRunRepository,
		partitionDelay:    partitionDelay,
	}
}

// SyncRandom issues count independent single-record fetches (the source has no
// bulk random endpoint), then upserts everything inside one transaction. A
// fetch failure is logged and dropped, never retried and never counted. Any
// unexpected insert error rolls back the whole batch.
func (s *syncService) SyncRandom(ctx context.Context, count int) (domain.SyncReport, error) {
	startedAt := time.Now()

	raws := make([]mealdb.RawMeal, 0, count)
	for i := 0; i < count; i++ {
		raw, err := s.source.RandomMeal(ctx)
		if err != nil {
			utils.Logger.Warn("random meal fetch failed", zap.Error(err))
			continue
		}
		if raw == nil {
			continue
		}
		raws = append(raws, raw)
	}

	var added, skipped int
	err := s.recipeRepository.Transaction(ctx, func(tx recipe.RecipeRepository) error {
		var txErr error
		added, skipped, txErr = s.upsertBatch(ctx, tx, raws)
		return txErr
	})

	report := s.buildReport(domain.StrategyRandom, count, added, skipped, startedAt)
	if err != nil {
		s.recordRun(ctx, report, err)
		return report, err
	}

	s.recordRun(ctx, report, nil)
	return report, nil
}

// SyncByCategory picks up to 3 categories at random and imports a sample of
// each, one transaction per category: a failed category rolls back only its
// own inserts and the sync moves on to the next one.
func (s *syncService) SyncByCategory(ctx context.Context, target int) (domain.SyncReport, error) {
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		utils.Logger.Warn("category list fetch failed", zap.Error(err))
		categories = nil
	}

	report, err := s.syncPartitions(ctx, domain.StrategyCategory, target, sample(categories, maxCategories), s.source.FilterByCategory)
	return report, err
}

// SyncByArea is the category sync partitioned by area/cuisine, two areas max.
func (s *syncService) SyncByArea(ctx context.Context, target int) (domain.SyncReport, error) {
	areas, err := s.source.ListAreas(ctx)
	if err != nil {
		utils.Logger.Warn("area list fetch failed", zap.Error(err))
		areas = nil
	}

	report, err := s.syncPartitions(ctx, domain.StrategyArea, target, sample(areas, maxAreas), s.source.FilterByArea)
	return report, err
}

func (s *syncService) syncPartitions(
	ctx context.Context,
	strategy string,
	target int,
	partitions []string,
	fetch func(ctx context.Context, partition string) ([]mealdb.RawMeal, error),
) (domain.SyncReport, error) {
	startedAt := time.Now()

	var added, skipped int
	for i, partition := range partitions {
		// Fixed pause between partitions to respect source rate limits.
		if i > 0 && s.partitionDelay > 0 {
			time.Sleep(s.partitionDelay)
		}

		meals, err := fetch(ctx, partition)
		if err != nil {
			utils.Logger.Warn("partition fetch failed",
				zap.String("strategy", strategy),
				zap.String("partition", partition),
				zap.Error(err),
			)
			continue
		}

		selected := sample(meals, target/len(partitions))

		err = s.recipeRepository.Transaction(ctx, func(tx recipe.RecipeRepository) error {
			a, sk, txErr := s.upsertBatch(ctx, tx, selected)
			if txErr != nil {
				return txErr
			}
			added += a
			skipped += sk
			return nil
		})
		if err != nil {
			utils.Logger.Error("partition sync rolled back",
				zap.String("strategy", strategy),
				zap.String("partition", partition),
				zap.Error(err),
			)
			continue
		}
	}

	report := s.buildReport(strategy, target, added, skipped, startedAt)
	s.recordRun(ctx, report, nil)
	return report, nil
}

// upsertBatch normalizes and inserts raw records against the given repository
// handle. Existing meal ids count as skipped; a duplicate-key race is also a
// skip. Any other store error aborts the batch.
func (s *syncService) upsertBatch(ctx context.Context, repo recipe.RecipeRepository, raws []mealdb.RawMeal) (int, int, error) {
	var added, skipped int
	for _, raw := range raws {
		rec := recipe.Normalize(raw)
		if rec.MealID == "" {
			utils.Logger.Warn("dropping record without meal id", zap.String("name", rec.Name))
			continue
		}

		existing, err := repo.FindByMealID(ctx, rec.MealID)
		if err != nil {
			return added, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		if err := repo.Create(ctx, &rec); err != nil {
			if errors.Is(err, domain.ErrDuplicateRecipe) {
				skipped++
				continue
			}
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

func (s *syncService) ChooseStrategy(currentCount int64) (string, int) {
	switch {
	case currentCount < quickThreshold:
		return domain.StrategyQuick, quickTarget
	case currentCount < randomThreshold:
		return domain.StrategyRandom, randomTarget
	default:
		return domain.StrategyCategory, categoryTarget
	}
}

// SmartSync inspects the store size and runs the strategy ChooseStrategy picks.
func (s *syncService) SmartSync(ctx context.Context) (domain.SyncReport, error) {
	count, err := s.recipeRepository.Count(ctx)
	if err != nil {
		return domain.SyncReport{}, err
	}

	strategy, target := s.ChooseStrategy(count)
	utils.Logger.Info("smart sync",
		zap.Int64("current_count", count),
		zap.String("strategy", strategy),
		zap.Int("target", target),
	)

	switch strategy {
	case domain.StrategyCategory:
		return s.SyncByCategory(ctx, target)
	case domain.StrategyArea:
		return s.SyncByArea(ctx, target)
	default:
		return s.SyncRandom(ctx, target)
	}
}

func (s *syncService) GetRecentRuns(ctx context.Context, limit int) ([]*entities.SyncRun, error) {
	return s.syncRunRepository.GetRecentSyncRuns(ctx, limit)
}

func (s *syncService) buildReport(strategy string, target, added, skipped int, startedAt time.Time) domain.SyncReport {
	return domain.SyncReport{
		RunID:     uuid.New(),
		Strategy:  strategy,
		Target:    target,
		Added:     added,
		Skipped:   skipped,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}
}

// recordRun persists the outcome for later inspection; bookkeeping failures
// are logged, never surfaced to the sync caller.
func (s *syncService) recordRun(ctx context.Context, report domain.SyncReport, syncErr error) {
	run := &entities.SyncRun{
		ID:         report.RunID,
		Strategy:   report.Strategy,
		Target:     report.Target,
		Added:      report.Added,
		Skipped:    report.Skipped,
		Status:     domain.SyncStatusCompleted,
		StartedAt:  report.StartedAt,
		FinishedAt: report.StartedAt.Add(report.Duration),
	}
	if syncErr != nil {
		run.Status = domain.SyncStatusFailed
		run.Error = syncErr.Error()
	}

	if err := s.syncRunRepository.CreateSyncRun(ctx, run); err != nil {
		utils.Logger.Error("failed to record sync run", zap.Error(err))
	}
}

// sample returns up to n items drawn at random without replacement.
func sample[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
