package store

import "strings"

// rootAliases maps the accepted spellings of registry roots to their
// canonical short names.
var rootAliases = map[string]string{
	"hklm":                "HKLM",
	"hkey_local_machine":  "HKLM",
	"hkcu":                "HKCU",
	"hkey_current_user":   "HKCU",
	"hku":                 "HKU",
	"hkey_users":          "HKU",
	"hkcr":                "HKCR",
	"hkey_classes_root":   "HKCR",
	"hkcc":                "HKCC",
	"hkey_current_config": "HKCC",
}

// SplitRoot splits a key path into its canonical root name and the
// remaining subpath. ok is false when the first component is not a
// recognized root.
func SplitRoot(key string) (root, rest string, ok bool) {
	key = strings.Trim(key, `\`)
	first, remainder, _ := strings.Cut(key, `\`)
	canonical, ok := rootAliases[strings.ToLower(first)]
	if !ok {
		return "", key, false
	}
	return canonical, remainder, true
}
