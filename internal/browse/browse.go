package browse

import (
	"encoding/json"

	"github.com/five82/hostsnap/internal/snapshot"
)

// Kind identifies one of the three fetches the browser issues.
type Kind int

const (
	KindTimestamps Kind = iota
	KindContent
	KindDiff
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindTimestamps:
		return "timestamps"
	case KindContent:
		return "content"
	case KindDiff:
		return "diff"
	default:
		return "unknown"
	}
}

// Key is the selection a fetch was issued for.
type Key struct {
	Host string
	A    string
	B    string
}

// Token identifies an outstanding fetch. A response is applied only when it
// carries the token the state is still waiting on.
type Token struct {
	Kind  Kind
	Epoch uint64
	Key   Key
}

// Intent asks the caller to perform a fetch and report back with Token.
type Intent interface {
	Token() Token
}

// FetchTimestamps requests the timestamp list of Host.
type FetchTimestamps struct {
	Host string
	Tok  Token
}

// FetchContent requests the snapshot of Host taken at A.
type FetchContent struct {
	Host string
	A    string
	Tok  Token
}

// FetchDiff requests the comparison of A and B on Host.
type FetchDiff struct {
	Host string
	A    string
	B    string
	Tok  Token
}

func (f FetchTimestamps) Token() Token { return f.Tok }
func (f FetchContent) Token() Token    { return f.Tok }
func (f FetchDiff) Token() Token       { return f.Tok }

// Phase summarizes how deep the selection goes.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseHostSelected
	PhaseTimestampSelected
	PhaseComparing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHostSelected:
		return "host"
	case PhaseTimestampSelected:
		return "timestamp"
	case PhaseComparing:
		return "comparing"
	default:
		return "unknown"
	}
}

// State is an immutable selection. Transitions return a new State; nothing
// reachable from one State is shared with another.
type State struct {
	host      string
	a         string
	b         string
	comparing bool

	timestamps []string
	content    json.RawMessage
	diff       *snapshot.DiffResult

	epoch   uint64
	pending [kindCount]Token
	errs    [kindCount]string
}

// Host returns the selected host, or "".
func (s State) Host() string { return s.host }

// TimestampA returns the primary timestamp, or "".
func (s State) TimestampA() string { return s.a }

// TimestampB returns the comparison timestamp, or "".
func (s State) TimestampB() string { return s.b }

// Comparing reports whether comparison mode is on.
func (s State) Comparing() bool { return s.comparing }

// Timestamps returns a copy of the loaded timestamp list in backend order.
func (s State) Timestamps() []string { return cloneStrings(s.timestamps) }

// Content returns a copy of the loaded snapshot for A, or nil.
func (s State) Content() json.RawMessage { return cloneBytes(s.content) }

// Diff returns the loaded comparison of A and B.
func (s State) Diff() (snapshot.DiffResult, bool) {
	if s.diff == nil {
		return snapshot.DiffResult{}, false
	}
	return *s.diff, true
}

// Err returns the failure recorded for kind, or "".
func (s State) Err(kind Kind) string {
	if kind < 0 || kind >= kindCount {
		return ""
	}
	return s.errs[kind]
}

// Awaiting reports whether a fetch of kind is outstanding.
func (s State) Awaiting(kind Kind) bool {
	if kind < 0 || kind >= kindCount {
		return false
	}
	return s.pending[kind].Epoch != 0
}

// Loading reports whether any fetch is outstanding.
func (s State) Loading() bool {
	for k := Kind(0); k < kindCount; k++ {
		if s.Awaiting(k) {
			return true
		}
	}
	return false
}

// Phase returns the current depth of the selection.
func (s State) Phase() Phase {
	switch {
	case s.host == "":
		return PhaseIdle
	case s.a == "":
		return PhaseHostSelected
	case s.comparing:
		return PhaseComparing
	default:
		return PhaseTimestampSelected
	}
}

// Candidates returns the loaded timestamps that may be chosen as B: every
// timestamp except A, in backend order.
func (s State) Candidates() []string {
	out := make([]string, 0, len(s.timestamps))
	for _, ts := range s.timestamps {
		if ts != s.a {
			out = append(out, ts)
		}
	}
	return out
}

// SelectHost starts over on host. Everything below the host is discarded and
// the timestamp list is requested.
func (s State) SelectHost(host string) (State, []Intent) {
	if host == "" {
		return s, nil
	}
	next := State{host: host, epoch: s.epoch}
	tok := next.issue(KindTimestamps, Key{Host: host})
	return next, []Intent{FetchTimestamps{Host: host, Tok: tok}}
}

// TimestampsLoaded records the timestamp list. It reports false when tok is
// not the outstanding timestamps fetch.
func (s State) TimestampsLoaded(tok Token, list []string, err error) (State, bool) {
	if !s.current(KindTimestamps, tok) {
		return s, false
	}
	next := s.clone()
	next.pending[KindTimestamps] = Token{}
	if err != nil {
		next.errs[KindTimestamps] = err.Error()
		return next, true
	}
	next.errs[KindTimestamps] = ""
	next.timestamps = cloneStrings(list)
	return next, true
}

// SelectTimestampA picks the primary snapshot. The comparison side is reset
// and the content of ts is requested.
func (s State) SelectTimestampA(ts string) (State, []Intent) {
	if s.host == "" || !s.listed(ts) {
		return s, nil
	}
	next := s.clone()
	next.a = ts
	next.b = ""
	next.comparing = false
	next.content = nil
	next.diff = nil
	next.errs[KindContent] = ""
	next.errs[KindDiff] = ""
	next.pending[KindDiff] = Token{}
	tok := next.issue(KindContent, Key{Host: s.host, A: ts})
	return next, []Intent{FetchContent{Host: s.host, A: ts, Tok: tok}}
}

// ContentLoaded records the snapshot document for A.
func (s State) ContentLoaded(tok Token, content json.RawMessage, err error) (State, bool) {
	if !s.current(KindContent, tok) {
		return s, false
	}
	next := s.clone()
	next.pending[KindContent] = Token{}
	if err != nil {
		next.errs[KindContent] = err.Error()
		return next, true
	}
	next.errs[KindContent] = ""
	next.content = cloneBytes(content)
	return next, true
}

// EnterCompareMode lets a second timestamp be chosen. A must be set.
func (s State) EnterCompareMode() (State, []Intent) {
	if s.a == "" || s.comparing {
		return s, nil
	}
	next := s.clone()
	next.comparing = true
	return next, nil
}

// ExitCompareMode leaves comparison mode, dropping B and its diff.
func (s State) ExitCompareMode() (State, []Intent) {
	if !s.comparing {
		return s, nil
	}
	next := s.clone()
	next.comparing = false
	next.b = ""
	next.diff = nil
	next.errs[KindDiff] = ""
	next.pending[KindDiff] = Token{}
	return next, nil
}

// SelectTimestampB picks the snapshot to compare A against and requests the
// diff. ts must be listed and differ from A.
func (s State) SelectTimestampB(ts string) (State, []Intent) {
	if !s.comparing || ts == s.a || !s.listed(ts) {
		return s, nil
	}
	next := s.clone()
	next.b = ts
	next.diff = nil
	next.errs[KindDiff] = ""
	tok := next.issue(KindDiff, Key{Host: s.host, A: s.a, B: ts})
	return next, []Intent{FetchDiff{Host: s.host, A: s.a, B: ts, Tok: tok}}
}

// DiffLoaded records the comparison of A and B. A failure leaves the content
// of A in place.
func (s State) DiffLoaded(tok Token, result snapshot.DiffResult, err error) (State, bool) {
	if !s.current(KindDiff, tok) {
		return s, false
	}
	next := s.clone()
	next.pending[KindDiff] = Token{}
	if err != nil {
		next.errs[KindDiff] = err.Error()
		return next, true
	}
	next.errs[KindDiff] = ""
	next.diff = &result
	return next, true
}

// Retry reissues the fetch of kind for the current selection, for use after an
// error. It returns no intent when the selection does not support kind.
func (s State) Retry(kind Kind) (State, []Intent) {
	switch kind {
	case KindTimestamps:
		if s.host == "" {
			return s, nil
		}
		next := s.clone()
		next.errs[kind] = ""
		tok := next.issue(kind, Key{Host: s.host})
		return next, []Intent{FetchTimestamps{Host: s.host, Tok: tok}}
	case KindContent:
		if s.a == "" {
			return s, nil
		}
		next := s.clone()
		next.errs[kind] = ""
		tok := next.issue(kind, Key{Host: s.host, A: s.a})
		return next, []Intent{FetchContent{Host: s.host, A: s.a, Tok: tok}}
	case KindDiff:
		if s.b == "" {
			return s, nil
		}
		next := s.clone()
		next.errs[kind] = ""
		tok := next.issue(kind, Key{Host: s.host, A: s.a, B: s.b})
		return next, []Intent{FetchDiff{Host: s.host, A: s.a, B: s.b, Tok: tok}}
	default:
		return s, nil
	}
}

// issue must only be called on a state that is not shared yet.
func (s *State) issue(kind Kind, key Key) Token {
	s.epoch++
	tok := Token{Kind: kind, Epoch: s.epoch, Key: key}
	s.pending[kind] = tok
	return tok
}

func (s State) current(kind Kind, tok Token) bool {
	return tok.Kind == kind && tok.Epoch != 0 && s.pending[kind] == tok
}

func (s State) listed(ts string) bool {
	if ts == "" {
		return false
	}
	for _, t := range s.timestamps {
		if t == ts {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	next := s
	next.timestamps = cloneStrings(s.timestamps)
	next.content = cloneBytes(s.content)
	if s.diff != nil {
		d := *s.diff
		next.diff = &d
	}
	return next
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneBytes(in json.RawMessage) json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(json.RawMessage, len(in))
	copy(out, in)
	return out
}
