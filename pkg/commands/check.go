package commands

import (
	"github.com/keywarden/keywarden/pkg/logging"
	"github.com/keywarden/keywarden/pkg/reconcile"
)

// Check reports drift between the catalog and the store without changing
// anything: a forced dry-run apply. ForceRecreate is ignored since no write
// would be issued anyway.
func Check(opts ApplyOptions) (*reconcile.Report, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Check").Msg("Executing command")

	opts.DryRun = true
	opts.ForceRecreate = false
	return Apply(opts)
}
