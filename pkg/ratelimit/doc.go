// Package ratelimit paces paginated requests.
//
// Instagram tolerates bursts poorly, so list operations pause between
// pages. The only policy is a fixed random delay:
//
//	limiter := ratelimit.New(true, time.Second, 3*time.Second)
//	limiter.Wait() // sleeps between 1s and 3s
//
// NoDelay turns pacing off.
package ratelimit
