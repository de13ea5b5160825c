// Package snapshot provides an HTTP client for the host snapshot API.
//
// # Overview
//
// The snapshot service stores JSON configuration captures per host and
// compares any two of them. This package speaks its HTTP API:
//
//	GET  /api/host/all                      every known host
//	GET  /api/host?ip=<host>                snapshot timestamps for a host
//	GET  /api/snapshot?ip=<host>&at=<ts>    one snapshot document
//	GET  /api/snapshot/diff?ip=&t1=&t2=     {"DiffStatus", "Differences"}
//	POST /api/snapshot                      multipart upload, field "file"
//	GET  /api/health                        liveness
//
// # Files
//
//   - client.go: Gateway interface, Client and error types
//   - types.go: diff verdicts and timestamp helpers
//   - pretty.go: JSON and YAML rendering of snapshot documents
//
// # Errors
//
// Responses outside 2xx become *APIError carrying the request path, the status
// code and the trimmed response body. The backend answers 204 when a snapshot
// file is missing; a 204 on a request that expects a body is reported as a
// not-found APIError. Transport failures are wrapped as "execute request: ...".
//
//	content, err := client.GetSnapshot(ctx, "10.0.0.5", ts)
//	if snapshot.IsNotFound(err) {
//		// the timestamp is listed but the file is gone
//	}
//
// Upload validates the filename with snapname.Validate before touching the
// network and returns the *snapname.ValidationError unchanged.
//
// # Timestamps
//
// Timestamps are opaque strings to the API. ParseTimestamp and FormatTimestamp
// only help with display; the backend's ordering is never changed here.
package snapshot
