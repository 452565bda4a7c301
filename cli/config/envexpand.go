// Package config handles catalogi.yaml loading.
package config

import (
	"os"
	"regexp"
	"strings"
)

// envRef matches ${NAME} and ${NAME:-fallback}.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnv substitutes ${NAME} and ${NAME:-fallback} references in a
// catalogi.yaml document. An unset or empty variable takes the fallback,
// or the empty string when there is none. Text outside references is
// copied verbatim.
func ExpandEnv(doc string) string {
	refs := envRef.FindAllStringSubmatchIndex(doc, -1)
	if len(refs) == 0 {
		return doc
	}

	var b strings.Builder
	b.Grow(len(doc))
	last := 0
	for _, m := range refs {
		b.WriteString(doc[last:m[0]])
		name := doc[m[2]:m[3]]
		fallback := ""
		if m[4] >= 0 {
			fallback = doc[m[4]:m[5]]
		}
		b.WriteString(envValue(name, fallback))
		last = m[1]
	}
	b.WriteString(doc[last:])
	return b.String()
}

func envValue(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
