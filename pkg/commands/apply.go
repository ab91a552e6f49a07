// Package commands implements the business logic behind the CLI verbs,
// decoupled from cobra so it can be driven directly from tests.
package commands

import (
	"github.com/keywarden/keywarden/pkg/logging"
	"github.com/keywarden/keywarden/pkg/paths"
	"github.com/keywarden/keywarden/pkg/reconcile"
	"github.com/keywarden/keywarden/pkg/settings"
	"github.com/keywarden/keywarden/pkg/store"
)

// ApplyOptions defines the options for the Apply command.
type ApplyOptions struct {
	// CatalogPath is the settings catalog file to enforce. Empty selects
	// the built-in hardening baseline.
	CatalogPath string
	// HivePath selects the offline hive-file backend. Empty targets the
	// live registry (Windows only).
	HivePath string
	// HivePrefix is stripped from catalog key paths when enforcing onto a
	// hive file mounted below the catalog's location (e.g. "SOFTWARE").
	HivePrefix string
	// ForceRecreate deletes each present value before writing it.
	ForceRecreate bool
	// DryRun reports what would change without mutating the store.
	DryRun bool

	// Store overrides backend selection with an already-open store. The
	// caller keeps ownership of its lifecycle. Used by tests.
	Store store.Store
}

// Apply loads the catalog, opens the selected store backend, and runs one
// reconcile pass. The report carries per-entry outcomes; callers decide the
// process exit code from Report.Failed.
func Apply(opts ApplyOptions) (*reconcile.Report, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Apply").Bool("dryRun", opts.DryRun).Msg("Executing command")

	catalog, err := loadCatalog(opts.CatalogPath)
	if err != nil {
		return nil, err
	}

	s := opts.Store
	if s == nil {
		s, err = openStore(opts.HivePath, opts.HivePrefix)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := s.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("Failed to close store")
			}
		}()
	}

	rec := reconcile.New(s, reconcile.Options{
		ForceRecreate: opts.ForceRecreate,
		DryRun:        opts.DryRun,
	})
	report := rec.Apply(catalog)

	log.Info().Str("command", "Apply").Str("summary", report.Summary()).Msg("Command finished")
	return report, nil
}

// loadCatalog resolves which catalog to enforce: an explicit path, else a
// discovered user catalog, else the built-in hardening baseline.
func loadCatalog(path string) (settings.Catalog, error) {
	if path == "" {
		discovered, ok := paths.DefaultCatalogPath()
		if !ok {
			return settings.Default(), nil
		}
		path = discovered
	}
	return settings.Load(path)
}
