// Package gridbase provides a Go client SDK for the Gridbase tabular-data
// service: sheets, rows, columns, attachments and shares behind a typed
// resource API.
//
// Basic usage:
//
//	client, err := gridbase.New("your-access-token")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sheet, err := client.Sheets().Get(ctx, 4583173393803140)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Sheet:", sheet.Name)
//
// All accessors returned by a client share one dispatcher, one access token
// and one assumed-user setting; a single client is safe for concurrent use.
//
// Rate-limited (503) calls can be retried automatically within a wall-clock
// budget:
//
//	client, err := gridbase.New(token, gridbase.WithRetryBudget(2*time.Minute))
//
// Failures carry types rather than magic values: use errors.Is with the
// package sentinels (gridbase.ErrNotFound, gridbase.ErrServiceUnavailable,
// ...) to branch on the kind, and errors.As with *gridbase.APIError to reach
// the server's message, errorCode and refId.
package gridbase
