// Package reconcile walks a settings catalog in order and makes the store
// match it: keys are created as needed, differing values rewritten, and
// absent-marked values deleted. Every entry produces a result; one failing
// entry never aborts the pass and never hides behind a swallowed error.
package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/keywarden/keywarden/pkg/codec"
	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/logging"
	"github.com/keywarden/keywarden/pkg/settings"
	"github.com/keywarden/keywarden/pkg/store"
)

// Options tunes an apply pass.
type Options struct {
	// ForceRecreate deletes each present-entry's value before writing,
	// allowing type changes that a store may reject in place.
	ForceRecreate bool
	// DryRun computes and reports what would change without mutating the
	// store.
	DryRun bool
}

// Reconciler applies catalogs to a single store, sequentially and without
// rollback. The catalog is supplied per Apply call, not baked in, so the
// same reconciler can enforce arbitrary catalogs.
type Reconciler struct {
	store store.Store
	opts  Options
	log   zerolog.Logger
}

// New creates a reconciler over the given store.
func New(s store.Store, opts Options) *Reconciler {
	return &Reconciler{
		store: s,
		opts:  opts,
		log:   logging.GetLogger("reconcile"),
	}
}

// Apply enforces every catalog entry in listed order and returns the
// per-entry report. The pass itself never returns an error; failures are
// collected in the report for the caller to surface.
func (r *Reconciler) Apply(catalog settings.Catalog) *Report {
	report := &Report{DryRun: r.opts.DryRun}

	for _, s := range catalog {
		status, err := r.applyOne(s)
		report.add(s, status, err)
		if err != nil {
			r.log.Error().Err(err).
				Str("key", s.Key).Str("name", s.Name).
				Msg("Failed to enforce setting")
		}
	}

	r.log.Info().Str("summary", report.Summary()).Bool("dryRun", r.opts.DryRun).
		Msg("Apply pass finished")
	return report
}

func (r *Reconciler) applyOne(s settings.Setting) (Status, error) {
	switch s.Ensure {
	case settings.Present:
		return r.ensurePresent(s)
	case settings.Absent:
		return r.ensureAbsent(s)
	default:
		// An unrecognized presence is rejected, not silently skipped.
		return StatusFailed, errors.Newf(errors.ErrInvalidInput,
			"setting %s\\%s has unrecognized presence %d", s.Key, s.Name, int(s.Ensure))
	}
}

func (r *Reconciler) ensurePresent(s settings.Setting) (Status, error) {
	desired, err := codec.Encode(s.Value)
	if err != nil {
		return StatusFailed, err
	}

	if r.opts.DryRun {
		cur, ok, err := r.store.ReadValue(s.Key, s.Name)
		if err != nil {
			return StatusFailed, err
		}
		if ok && !r.opts.ForceRecreate && cur.Equal(desired) {
			return StatusUnchanged, nil
		}
		return StatusApplied, nil
	}

	created, err := r.store.EnsureKey(s.Key)
	if err != nil {
		return StatusFailed, err
	}
	if created {
		r.log.Debug().Str("key", s.Key).Msg("Created key")
	}

	res, err := store.Write(r.store, s.Key, s.Name, desired, r.opts.ForceRecreate)
	if err != nil {
		return StatusFailed, err
	}
	if !res.Changed {
		return StatusUnchanged, nil
	}

	old := "<absent>"
	if res.Existed {
		old = res.Previous.String()
	}
	r.log.Debug().
		Str("key", s.Key).Str("name", s.Name).
		Str("transition", old+" -> "+desired.String()).
		Msg("Set value")
	return StatusApplied, nil
}

func (r *Reconciler) ensureAbsent(s settings.Setting) (Status, error) {
	ok, err := r.store.HasValue(s.Key, s.Name)
	if err != nil {
		return StatusFailed, err
	}
	if !ok {
		return StatusUnchanged, nil
	}
	if r.opts.DryRun {
		return StatusRemoved, nil
	}

	if err := r.store.DeleteValue(s.Key, s.Name); err != nil {
		return StatusFailed, err
	}
	r.log.Debug().Str("key", s.Key).Str("name", s.Name).Msg("Removed value")
	return StatusRemoved, nil
}
