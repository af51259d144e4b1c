package app

import (
	"time"

	"kittyfit/internal/domain"
)

// Segment is a top-level route grouping the navigation guard reasons about.
type Segment string

// Route segments.
const (
	SegmentAuth       Segment = "auth"
	SegmentOnboarding Segment = "onboarding"
	SegmentApp        Segment = "app"
)

// KnownSegment reports whether s is one of the defined segments.
func KnownSegment(s Segment) bool {
	switch s {
	case SegmentAuth, SegmentOnboarding, SegmentApp:
		return true
	}
	return false
}

// Decision is the guard's verdict for the current segment.
type Decision struct {
	Redirect bool    `json:"redirect"`
	Target   Segment `json:"target,omitempty"`
}

var stay = Decision{}

// Decide evaluates the redirect rules against a session snapshot. It is a
// pure, level-triggered function: callers re-evaluate it on every state
// change rather than tracking transitions.
//
// Rule order encodes priority:
//  1. signed in + first login: locked into onboarding, pre-empting
//     everything so no authenticated content flashes before onboarding ends
//  2. signed out: only the auth segment is reachable
//  3. signed in, onboarded: the auth segment becomes unreachable
//  4. otherwise stay
//
// While Loading is true the guard never redirects; the shell shows an
// interstitial instead.
func Decide(state domain.SessionState, current Segment) Decision {
	if state.Loading {
		return stay
	}

	switch {
	case state.User != nil && state.IsFirstLogin:
		if current != SegmentOnboarding {
			return Decision{Redirect: true, Target: SegmentOnboarding}
		}
	case state.User == nil:
		if current != SegmentAuth {
			return Decision{Redirect: true, Target: SegmentAuth}
		}
	default:
		if current == SegmentAuth {
			return Decision{Redirect: true, Target: SegmentApp}
		}
	}
	return stay
}

// Guard binds Decide to a session store and carries the presentation delay
// callers interpose before navigating. The delay is a UX parameter only;
// correctness never depends on it and zero is a valid value.
type Guard struct {
	sessions *SessionStore
	delay    time.Duration
}

// NewGuard creates a Guard over the given session store.
func NewGuard(sessions *SessionStore, delay time.Duration) *Guard {
	return &Guard{sessions: sessions, delay: delay}
}

// Decide evaluates the rules against the store's current state.
func (g *Guard) Decide(current Segment) Decision {
	return Decide(g.sessions.State(), current)
}

// Delay returns the presentation delay the caller should apply before a
// redirect fires.
func (g *Guard) Delay() time.Duration {
	return g.delay
}
