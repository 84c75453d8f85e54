package structured

import "strings"

// Environ turns KEY=VALUE pairs, as returned by os.Environ, into a flat
// mapping of strings. Entries without a name are skipped; a later duplicate
// name wins.
func Environ(environ []string) map[string]any {
	out := make(map[string]any, len(environ))
	for _, kv := range environ {
		name, value, _ := strings.Cut(kv, "=")
		if name == "" {
			continue
		}
		out[name] = value
	}
	return out
}
