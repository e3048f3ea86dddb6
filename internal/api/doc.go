// Package api is the request dispatch core shared by every Gridbase
// resource accessor. It builds authenticated requests, classifies
// responses, unwraps result envelopes and retries rate-limited calls.
//
// # Dispatch
//
// Every operation goes through one of the generic helpers ([Get],
// [GetList], [GetPage], [Post], [Put], [PostList], [PutList], [Delete]),
// all of which funnel into a single round-trip path: encode the body with
// the identity field suppressed, build an immutable request descriptor
// carrying the auth headers, send it through the retry policy, then either
// decode the 200 body into the caller's shape or classify the failure.
//
// # Retry Behavior
//
// Only 503 Service Unavailable responses are retried, on an exponential
// schedule with jitter (1s initial, doubling, 30s cap), bounded by the
// retry budget configured with [WithRetryBudget]. Without a budget each
// call gets exactly one attempt. Transport-level failures are never
// retried here; a caller-supplied http.Client may retry independently.
//
// Retried requests re-send the identical descriptor, headers and body
// included. The service is expected to handle retried writes per its own
// at-most-once contract; the client does not enforce idempotency.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. The access token and
// assumed user are shared values captured when a request is built, so a
// concurrent update affects subsequently built requests only.
package api
