// Package integrations provides the shared HTTP client used by API clients.
//
// # Overview
//
// [Client] bundles everything a REST integration needs:
//
//   - default headers (authorization, accept type, API version)
//   - an [httputil.Fetcher] that retries pending and transient responses
//   - a [cache.Cache] for successful response bodies
//
// The [github] subpackage builds the typed GitHub endpoints on top of it.
//
// # Caching
//
// [Client.Fetch] and [FetchAll] key responses by request URL through a
// [cache.Keyer]. Only successful outcomes are cached; a pending statistic or
// a failure is fetched again on the next run. Pass refresh=true to bypass
// the cache and overwrite stale entries.
//
// [github]: github.com/ghstats/ghstats/pkg/integrations/github
// [cache.Cache]: github.com/ghstats/ghstats/pkg/cache.Cache
// [cache.Keyer]: github.com/ghstats/ghstats/pkg/cache.Keyer
package integrations
