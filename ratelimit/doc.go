// Package ratelimit throttles outbound requests to a requests-per-window
// ceiling.
//
// A Limiter's Acquire blocks until starting a request would not exceed the
// configured rate:
//
//	limiter := ratelimit.New(5, time.Second) // 5 requests per second
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err // context cancelled while waiting
//	}
//	resp, err := httpClient.Do(req)
//
// Request starts are spaced at least window/limit apart, so no interval of
// the window's length ever admits more than the configured number of starts,
// under any number of concurrent callers. Capacity regenerates purely by
// time passing; nothing is returned after a request completes.
package ratelimit
