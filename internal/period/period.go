// Package period centralises every calendar-day decision made by the
// scheduling core: which board is on display, whether a clock or board may
// still be edited, and whether two board ranges collide.
//
// Stored dates arrive from the database as UTC-midnight timestamps whose UTC
// year/month/day are the intended calendar day. The current day, on the
// other hand, comes from the site's local wall clock. Comparing the two
// naively shifts the active window by one day near midnight in negative UTC
// offsets, so both are normalised here to UTC midnights of their intended
// calendar day before any comparison.
package period

import "time"

// Resolver normalises timestamps to calendar days and answers containment
// and mutability questions.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithNow overrides the clock source, used by tests.
func WithNow(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver builds a resolver for the given location. A nil location
// falls back to UTC.
func NewResolver(loc *time.Location, opts ...ResolverOption) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	r := &Resolver{loc: loc, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Location exposes the resolver's location for presentation formatting.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Day normalises a stored date to the UTC midnight of its intended calendar
// day. Stored DATE columns scan as UTC midnights already, making this a
// no-op for them; any stray time-of-day is stripped.
func (r *Resolver) Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day, expressed as a UTC midnight
// so it compares directly against stored dates.
func (r *Resolver) Today() time.Time {
	local := r.now().In(r.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether day falls inside [start, end], bounds inclusive.
func (r *Resolver) Contains(start, end, day time.Time) bool {
	s, e, d := r.Day(start), r.Day(end), r.Day(day)
	return !d.Before(s) && !d.After(e)
}

// Mutable reports whether a resource whose period ends on end may still be
// edited on day: true while end >= day, false from the next day on.
func (r *Resolver) Mutable(end, day time.Time) bool {
	return !r.Day(end).Before(r.Day(day))
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] intersect,
// bounds inclusive. Nested ranges count as overlapping.
func (r *Resolver) Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	as, ae := r.Day(aStart), r.Day(aEnd)
	bs, be := r.Day(bStart), r.Day(bEnd)
	return !as.After(be) && !ae.Before(bs)
}
