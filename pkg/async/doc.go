// Package async provides generic futures and settle-semantics fan-out used
// by the translation preloading paths.
//
// Go launches a function on its own goroutine and returns a Future that can
// be awaited, polled, or awaited with a timeout. Settle waits for a whole
// batch and returns every outcome, success and failure alike, so one failed
// item never aborts or cancels its siblings:
//
//	futures := make([]*async.Future[string], 0, len(locales))
//	for _, locale := range locales {
//		futures = append(futures, async.Go(ctx, func(ctx context.Context) (string, error) {
//			return load(ctx, locale)
//		}))
//	}
//	for _, res := range async.Settle(futures...) {
//		if res.Err != nil { /* log and continue */ }
//	}
package async
