// Package completion issues single-prompt requests to a chat-completion
// style HTTP API.
//
// Client is the minimal interface the summarization pipeline depends on:
//
//	client := completion.NewHTTPClient(completion.HTTPConfig{
//	    Endpoint: "https://api.openai.com/v1/chat/completions",
//	    APIKey:   os.Getenv("OPENAI_API_KEY"),
//	    Engine:   "gpt-3.5-turbo",
//	})
//	resp, err := client.Complete(ctx, completion.Request{
//	    Prompt:    prompt,
//	    MaxTokens: 650,
//	})
//
// # Retries and rate limiting
//
// Wrap any Client with Retrying to add bounded retries with exponential
// backoff and a shared request-rate ceiling:
//
//	limiter := ratelimit.New(cfg.RateLimit, cfg.RateWindow)
//	client = completion.NewRetrying(client, limiter)
//
// The limiter is acquired before every attempt, so retries count against
// the same ceiling as first tries. Transient failures (429, 5xx, transport
// errors) are retried; a Retry-After header from the server overrides the
// computed backoff.
//
// # Caching
//
// NewCached adds an in-memory TTL cache keyed by the full request, for
// repeated runs over unchanged repositories:
//
//	client = completion.NewCached(client, 500, 10*time.Minute)
//
// Caching is an optimization only; no component requires it.
//
// # Testing
//
// MockClient provides fixed or scripted responses with call tracking, and
// can be configured to fail a set number of times before succeeding.
package completion
