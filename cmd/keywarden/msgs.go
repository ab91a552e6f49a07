package keywarden

// User-facing strings, kept together so wording stays consistent.
const (
	MsgRootShort = "Declarative registry-state enforcement"
	MsgRootLong  = `keywarden enforces a declarative catalog of registry settings: it creates
missing keys, rewrites values that differ from the desired state, and removes
values marked absent. Applying the same catalog twice changes nothing.

It targets the live registry on Windows, or an offline hive file (via
--hive) on any OS.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	MsgApplyShort = "Enforce a settings catalog against the registry"
	MsgApplyLong  = `Apply loads a settings catalog (YAML or TOML) and makes the registry
match it, entry by entry in catalog order. Without --catalog, a user
catalog is discovered under the keywarden config directory; if none
exists, the built-in hardening baseline is enforced.

Failures on individual entries do not abort the run; they are collected
and reported, and the exit code is non-zero if any entry failed.`
	MsgApplyExample = `  # Enforce the built-in baseline on the live registry
  keywarden apply

  # Preview what a catalog would change on an offline SOFTWARE hive
  keywarden apply --catalog hardening.yaml --hive SOFTWARE --hive-prefix SOFTWARE --dry-run`

	MsgCheckShort = "Report drift without changing anything"
	MsgCheckLong  = `Check compares the registry against a settings catalog and reports every
entry that would change, without mutating anything. Exits non-zero when
drift or errors are found, so it can gate automation.`
)
