package syncer

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/pkg/mealdb"
	"recipe-hub/pkg/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned payloads. RandomMeal pops from a queue of results
// so individual fetches can succeed or fail independently.
type fakeSource struct {
	randomQueue []randomResult
	categories  []string
	areas       []string
	listErr     error
	filtered    map[string][]mealdb.RawMeal
	filterErrs  map[string]error
}

type randomResult struct {
	meal mealdb.RawMeal
	err  error
}

func (f *fakeSource) RandomMeal(context.Context) (mealdb.RawMeal, error) {
	if len(f.randomQueue) == 0 {
		return nil, domain.ErrSourceUnavailable
	}
	next := f.randomQueue[0]
	f.randomQueue = f.randomQueue[1:]
	return next.meal, next.err
}

func (f *fakeSource) SearchByName(context.Context, string) ([]mealdb.RawMeal, error) {
	return nil, nil
}

func (f *fakeSource) SearchByFirstLetter(context.Context, string) ([]mealdb.RawMeal, error) {
	return nil, nil
}

func (f *fakeSource) FilterByIngredient(context.Context, string) ([]mealdb.RawMeal, error) {
	return nil, nil
}

func (f *fakeSource) FilterByCategory(_ context.Context, category string) ([]mealdb.RawMeal, error) {
	if err, ok := f.filterErrs[category]; ok {
		return nil, err
	}
	return f.filtered[category], nil
}

func (f *fakeSource) FilterByArea(_ context.Context, area string) ([]mealdb.RawMeal, error) {
	if err, ok := f.filterErrs[area]; ok {
		return nil, err
	}
	return f.filtered[area], nil
}

func (f *fakeSource) LookupByID(context.Context, string) (mealdb.RawMeal, error) {
	return nil, nil
}

func (f *fakeSource) ListCategories(context.Context) ([]string, error) {
	return f.categories, f.listErr
}

func (f *fakeSource) ListAreas(context.Context) ([]string, error) {
	return f.areas, f.listErr
}

func (f *fakeSource) ListIngredients(context.Context) ([]string, error) {
	return nil, nil
}

// fakeRecipeStore keys recipes by meal id and snapshots its state around
// Transaction so an error from fn rolls everything back.
type fakeRecipeStore struct {
	byMealID   map[string]*entities.Recipe
	nextID     uint
	createErrs map[string]error
}

func newFakeRecipeStore() *fakeRecipeStore {
	return &fakeRecipeStore{
		byMealID:   make(map[string]*entities.Recipe),
		createErrs: make(map[string]error),
	}
}

func (f *fakeRecipeStore) Create(_ context.Context, rec *entities.Recipe) error {
	if err, ok := f.createErrs[rec.MealID]; ok {
		return err
	}
	if _, ok := f.byMealID[rec.MealID]; ok {
		return domain.ErrDuplicateRecipe
	}
	f.nextID++
	rec.ID = f.nextID
	f.byMealID[rec.MealID] = rec
	return nil
}

func (f *fakeRecipeStore) FindByID(_ context.Context, id uint) (*entities.Recipe, error) {
	for _, rec := range f.byMealID {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeStore) FindByMealID(_ context.Context, mealID string) (*entities.Recipe, error) {
	return f.byMealID[mealID], nil
}

func (f *fakeRecipeStore) Search(context.Context, string, string) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeStore) RandomSample(context.Context, int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeStore) Trending(context.Context, int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeStore) FindSimilarCandidates(context.Context, string, string, uint) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeStore) Count(context.Context) (int64, error) {
	return int64(len(f.byMealID)), nil
}

func (f *fakeRecipeStore) DistinctCategories(context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeRecipeStore) DistinctIngredients(context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeRecipeStore) Transaction(_ context.Context, fn func(tx recipe.RecipeRepository) error) error {
	snapshot := make(map[string]*entities.Recipe, len(f.byMealID))
	for k, v := range f.byMealID {
		snapshot[k] = v
	}
	savedID := f.nextID

	if err := fn(f); err != nil {
		f.byMealID = snapshot
		f.nextID = savedID
		return err
	}
	return nil
}

func (f *fakeRecipeStore) mealIDs() []string {
	out := make([]string, 0, len(f.byMealID))
	for id := range f.byMealID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type fakeSyncRunRepository struct {
	runs []*entities.SyncRun
}

func (f *fakeSyncRunRepository) CreateSyncRun(_ context.Context, run *entities.SyncRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeSyncRunRepository) GetRecentSyncRuns(_ context.Context, limit int) ([]*entities.SyncRun, error) {
	if limit > len(f.runs) {
		limit = len(f.runs)
	}
	return f.runs[:limit], nil
}

func meal(id, name string) mealdb.RawMeal {
	return mealdb.RawMeal{
		"idMeal":  &id,
		"strMeal": &name,
	}
}

func TestSyncRandom(t *testing.T) {
	ctx := context.Background()

	t.Run("imports every fetched meal", func(t *testing.T) {
		source := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{meal: meal("101", "B")},
			{meal: meal("102", "C")},
		}}
		store := newFakeRecipeStore()
		runs := &fakeSyncRunRepository{}
		svc := NewSyncService(source, store, runs, 0)

		report, err := svc.SyncRandom(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Added)
		assert.Equal(t, 0, report.Skipped)
		assert.Equal(t, []string{"100", "101", "102"}, store.mealIDs())

		require.Len(t, runs.runs, 1)
		assert.Equal(t, domain.SyncStatusCompleted, runs.runs[0].Status)
	})

	t.Run("second sync of the same meals only skips", func(t *testing.T) {
		store := newFakeRecipeStore()
		runs := &fakeSyncRunRepository{}

		first := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{meal: meal("101", "B")},
		}}
		_, err := NewSyncService(first, store, runs, 0).SyncRandom(ctx, 2)
		require.NoError(t, err)

		second := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{meal: meal("101", "B")},
		}}
		report, err := NewSyncService(second, store, runs, 0).SyncRandom(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Added)
		assert.Equal(t, 2, report.Skipped)
		assert.Equal(t, []string{"100", "101"}, store.mealIDs())
	})

	t.Run("fetch failures are dropped, not counted", func(t *testing.T) {
		source := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{err: domain.ErrSourceUnavailable},
			{meal: meal("101", "B")},
			{err: domain.ErrSourceUnavailable},
			{meal: meal("102", "C")},
		}}
		store := newFakeRecipeStore()
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SyncRandom(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Added+report.Skipped)
	})

	t.Run("unexpected store error rolls back the whole batch", func(t *testing.T) {
		source := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{meal: meal("101", "B")},
			{meal: meal("102", "C")},
		}}
		store := newFakeRecipeStore()
		store.createErrs["101"] = errors.New("connection reset")
		runs := &fakeSyncRunRepository{}
		svc := NewSyncService(source, store, runs, 0)

		_, err := svc.SyncRandom(ctx, 3)

		require.Error(t, err)
		assert.Empty(t, store.mealIDs())

		require.Len(t, runs.runs, 1)
		assert.Equal(t, domain.SyncStatusFailed, runs.runs[0].Status)
		assert.NotEmpty(t, runs.runs[0].Error)
	})

	t.Run("duplicate key race counts as skipped", func(t *testing.T) {
		source := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{meal: meal("101", "B")},
		}}
		store := newFakeRecipeStore()
		store.createErrs["101"] = domain.ErrDuplicateRecipe
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SyncRandom(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, 1, report.Added)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("records without a meal id are dropped", func(t *testing.T) {
		source := &fakeSource{randomQueue: []randomResult{
			{meal: meal("", "Nameless")},
			{meal: meal("100", "A")},
		}}
		store := newFakeRecipeStore()
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SyncRandom(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, 1, report.Added)
		assert.Equal(t, 0, report.Skipped)
	})
}

func TestSyncByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a sample from each category", func(t *testing.T) {
		source := &fakeSource{
			categories: []string{"Beef", "Chicken"},
			filtered: map[string][]mealdb.RawMeal{
				"Beef":    {meal("200", "Beef Stew"), meal("201", "Beef Wellington")},
				"Chicken": {meal("300", "Chicken Curry"), meal("301", "Chicken Soup")},
			},
		}
		store := newFakeRecipeStore()
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SyncByCategory(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 4, report.Added)
		assert.Equal(t, domain.StrategyCategory, report.Strategy)
		assert.Len(t, store.mealIDs(), 4)
	})

	t.Run("a failed partition does not stop the others", func(t *testing.T) {
		source := &fakeSource{
			categories: []string{"Beef", "Chicken"},
			filtered: map[string][]mealdb.RawMeal{
				"Chicken": {meal("300", "Chicken Curry"), meal("301", "Chicken Soup")},
			},
			filterErrs: map[string]error{"Beef": domain.ErrSourceUnavailable},
		}
		store := newFakeRecipeStore()
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SyncByCategory(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Added)
		assert.Equal(t, []string{"300", "301"}, store.mealIDs())
	})

	t.Run("a partition rollback leaves other partitions committed", func(t *testing.T) {
		source := &fakeSource{
			categories: []string{"Beef", "Chicken"},
			filtered: map[string][]mealdb.RawMeal{
				"Beef":    {meal("200", "Beef Stew"), meal("201", "Beef Wellington")},
				"Chicken": {meal("300", "Chicken Curry"), meal("301", "Chicken Soup")},
			},
		}
		store := newFakeRecipeStore()
		store.createErrs["201"] = errors.New("connection reset")
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SyncByCategory(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Added)
		assert.Equal(t, []string{"300", "301"}, store.mealIDs())
	})

	t.Run("unavailable category list yields an empty run", func(t *testing.T) {
		source := &fakeSource{listErr: domain.ErrSourceUnavailable}
		store := newFakeRecipeStore()
		runs := &fakeSyncRunRepository{}
		svc := NewSyncService(source, store, runs, 0)

		report, err := svc.SyncByCategory(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Added)
		assert.Empty(t, store.mealIDs())
		require.Len(t, runs.runs, 1)
		assert.Equal(t, domain.SyncStatusCompleted, runs.runs[0].Status)
	})
}

func TestSyncByArea(t *testing.T) {
	source := &fakeSource{
		areas: []string{"Japanese", "Thai"},
		filtered: map[string][]mealdb.RawMeal{
			"Japanese": {meal("400", "Ramen")},
			"Thai":     {meal("500", "Pad Thai")},
		},
	}
	store := newFakeRecipeStore()
	svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

	report, err := svc.SyncByArea(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyArea, report.Strategy)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, []string{"400", "500"}, store.mealIDs())
}

func TestChooseStrategy(t *testing.T) {
	svc := &syncService{}

	tests := []struct {
		count    int64
		strategy string
		target   int
	}{
		{0, domain.StrategyQuick, 50},
		{99, domain.StrategyQuick, 50},
		{100, domain.StrategyRandom, 30},
		{499, domain.StrategyRandom, 30},
		{500, domain.StrategyCategory, 20},
		{10000, domain.StrategyCategory, 20},
	}

	for _, tt := range tests {
		strategy, target := svc.ChooseStrategy(tt.count)
		assert.Equalf(t, tt.strategy, strategy, "count=%d", tt.count)
		assert.Equalf(t, tt.target, target, "count=%d", tt.count)
	}
}

func TestSmartSync(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store runs a bulk random import", func(t *testing.T) {
		source := &fakeSource{randomQueue: []randomResult{
			{meal: meal("100", "A")},
			{meal: meal("101", "B")},
		}}
		store := newFakeRecipeStore()
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SmartSync(ctx)

		require.NoError(t, err)
		assert.Equal(t, 50, report.Target)
		assert.Equal(t, 2, report.Added)
	})

	t.Run("large store partitions by category", func(t *testing.T) {
		store := newFakeRecipeStore()
		for i := 0; i < 500; i++ {
			id := strconv.Itoa(i)
			store.nextID++
			store.byMealID[id] = &entities.Recipe{ID: store.nextID, MealID: id}
		}

		source := &fakeSource{
			categories: []string{"Beef"},
			filtered: map[string][]mealdb.RawMeal{
				"Beef": {meal("900", "Beef Stew")},
			},
		}
		svc := NewSyncService(source, store, &fakeSyncRunRepository{}, 0)

		report, err := svc.SmartSync(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.StrategyCategory, report.Strategy)
		assert.Equal(t, 1, report.Added)
	})
}
