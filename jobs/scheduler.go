package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"

	"github.com/clearlist/screener-backend/usecases"
	"github.com/clearlist/screener-backend/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// RunScheduler blocks running the periodic feed refresh until ctx is
// cancelled. Refresh cycles never overlap: a slow download must not pile up
// concurrent ingestions of the same source.
func RunScheduler(ctx context.Context, uc usecases.Usecases, refreshCron string) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
	}).WithContext(ctx)

	notConcurrent := false
	taskr.Task(refreshCron, func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "refresh_watchlist_feeds")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := RefreshWatchlistFeeds(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Run()
}
