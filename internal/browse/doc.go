// Package browse holds the host, snapshot and comparison selection.
//
// The selection is hierarchical: a host, then a primary timestamp A, then
// optionally a second timestamp B to compare against. Each level depends on
// the one above it, so choosing a new host discards A, B and everything
// loaded for them, and choosing a new A discards B and its diff.
//
// State is a value. Every transition returns a new State plus the fetches the
// caller should run as Intents; the UI turns each Intent into a tea.Cmd and
// feeds the result back through the matching *Loaded method:
//
//	st, intents := st.SelectHost("10.0.0.5")
//	// run FetchTimestamps in the background, later:
//	st, applied := st.TimestampsLoaded(tok, list, err)
//
// Responses arrive in any order. Each Intent carries a Token naming the kind
// of fetch, the selection it was issued for and an epoch that increases with
// every request. A response is applied only if its Token is the one the state
// is still waiting on; anything else is superseded and reported as not
// applied. Failures are kept per kind, so a failed diff leaves the content of
// A on screen.
package browse
