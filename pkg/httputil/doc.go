// Package httputil provides the retrying HTTP fetcher behind every GitHub
// REST call.
//
// # Overview
//
// GitHub computes repository statistics asynchronously: the first request
// for /stats/code_frequency usually answers 202 Accepted and only a later
// request returns the data. Network hiccups and TLS handshake failures are
// also common over long report runs. [Fetcher] absorbs both:
//
//   - [Request]: an immutable GET description (URL, headers, query)
//   - [Outcome]: the classified result (Success, Pending, Skipped, Failure)
//   - [Policy]: max attempts and a constant delay between them
//   - [FetchAll]: page/per_page pagination until an empty page
//
// # Classification
//
// Every response is mapped by [Classify]:
//
//   - 200: Success, the body is decoded with [Outcome.Decode]
//   - 202: Pending, retried after the policy delay
//   - 409 "Git Repository is empty": Skipped, never retried
//   - transport errors, 408, 429, 5xx: retried, then Failure
//   - other 4xx: Failure immediately
//
// # Retry
//
// [Retry] and [RetryWith] are the generic loop used by the fetcher and by
// the GraphQL client. The delay is constant:
//
//	err := httputil.Retry(ctx, 5, 4*time.Second, func() error {
//	    if err := call(); err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return nil
//	})
//
// Tests inject a [Sleeper] with [WithSleeper] to count waits without
// sleeping.
package httputil
