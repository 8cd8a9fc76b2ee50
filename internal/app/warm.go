package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// Warm runs a reverse search for every pal through c so later queries hit the
// cache. It returns the number of targets warmed.
func Warm(ctx context.Context, svc *breeding.Service, c *cache.Cache, concurrency int, logger *slog.Logger) (int, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	pals := svc.All()
	for _, p := range pals {
		name := p.Name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := cache.Key(svc.Version(), "reverse", name)
			combos, err := cache.Fetch(ctx, c, key, func() ([]models.Combination, error) {
				return svc.Reverse(name), nil
			})
			if err != nil {
				return err
			}
			logger.Debug("warmed reverse search", slog.String("target", name), slog.Int("combinations", len(combos)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(pals), nil
}
