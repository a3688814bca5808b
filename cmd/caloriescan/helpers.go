package caloriescan

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"caloriescan/internal/app"
	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
	"caloriescan/internal/logger"
	"caloriescan/internal/model"
	"caloriescan/internal/provider/openfoodfacts"
	"caloriescan/internal/store"
)

func withLedger(run func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error) error {
	log, err := logger.New(verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load(log)
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	led, err := ledger.Open(st, log)
	if err != nil {
		return err
	}
	return run(led, cfg, log)
}

func resolveDBPath(cfg *config.Config) (string, error) {
	if strings.TrimSpace(dbPath) != "" {
		return strings.TrimSpace(dbPath), nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func newLookupClient(cfg *config.Config) *openfoodfacts.Client {
	return &openfoodfacts.Client{
		BaseURL:    cfg.LookupBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		PageSize:   cfg.SearchPageSize,
	}
}

func parseMeal(value string) (model.Meal, error) {
	meal := model.Meal(strings.ToLower(strings.TrimSpace(value)))
	if !model.ValidMeal(meal) {
		return "", fmt.Errorf("invalid meal %q (use breakfast, lunch, dinner or snacks)", value)
	}
	return meal, nil
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func formatEntry(e model.FoodLogEntry) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%dg\t%d cal\tP:%dg C:%dg F:%dg\t%s",
		e.ID, e.Name, e.Brand, e.Meal, e.ServingG, e.Calories, e.ProteinG, e.CarbsG, e.FatG, e.AddedAt)
}

func formatProduct(i int, p model.Product) string {
	return fmt.Sprintf("%d. %s (%s)\t%d cal/100g\tP:%dg C:%dg F:%dg",
		i, p.Name, p.Brand, p.Calories, p.ProteinG, p.CarbsG, p.FatG)
}
