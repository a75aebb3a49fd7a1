package repo

import (
	"time"

	"github.com/tgienger/focusdash/internal/models"
)

// StudyTime owns the single per-day study time record
type StudyTime struct {
	store     Store
	now       Clock
	record    models.StudyTimeRecord
	recovered *ParseError
}

// StudyTimeOption configures OpenStudyTime
type StudyTimeOption func(*StudyTime)

// WithStudyClock overrides the clock that decides the current local day
func WithStudyClock(c Clock) StudyTimeOption {
	return func(r *StudyTime) { r.now = c }
}

// OpenStudyTime loads the study time record from s
func OpenStudyTime(s Store, opts ...StudyTimeOption) (*StudyTime, error) {
	r := &StudyTime{store: s, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	rec, perr, err := load[models.StudyTimeRecord](s, KeyStudyTime)
	if err != nil {
		return nil, err
	}
	r.recovered = perr
	r.record = rec
	return r, nil
}

// Recovered returns the parse error that was recovered while loading, if any
func (r *StudyTime) Recovered() *ParseError {
	return r.recovered
}

// Today returns the seconds studied on the current local day. A record
// left over from another day counts as zero.
func (r *StudyTime) Today() int {
	if r.record.Date != models.DateKey(r.now()) {
		return 0
	}
	return r.record.Seconds
}

// Record returns a copy of the stored record
func (r *StudyTime) Record() models.StudyTimeRecord {
	return r.record
}

// Accrue adds seconds to today's total. When the day has rolled over the
// previous record is discarded and counting restarts from zero.
func (r *StudyTime) Accrue(seconds int) error {
	today := models.DateKey(r.now())
	next := models.StudyTimeRecord{Seconds: seconds, Date: today}
	if r.record.Date == today {
		next.Seconds += r.record.Seconds
	}
	if err := save(r.store, KeyStudyTime, next); err != nil {
		return err
	}
	r.record = next
	return nil
}
