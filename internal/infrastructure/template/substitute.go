// Package template resuelve plantillas HTML y hojas de estilo por nombre y
// sustituye los marcadores {{TOKEN}}.
package template

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrUnresolvedToken la plantilla usa un marcador sin valor.
var ErrUnresolvedToken = errors.New("template: marcador sin valor")

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Z][A-Z0-9_]*)\s*\}\}`)

// Substitute reemplaza cada {{TOKEN}} por su valor. Los valores se insertan tal
// cual y no se vuelven a escanear. Un marcador sin valor es un error que nombra
// todos los faltantes.
func Substitute(text string, values map[string]string) (string, error) {
	missing := map[string]bool{}
	out := tokenRe.ReplaceAllStringFunc(text, func(m string) string {
		name := tokenRe.FindStringSubmatch(m)[1]
		v, ok := values[name]
		if !ok {
			missing[name] = true
			return m
		}
		return v
	})
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for n := range missing {
			names = append(names, n)
		}
		sort.Strings(names)
		return "", fmt.Errorf("%w: %s", ErrUnresolvedToken, strings.Join(names, ", "))
	}
	return out, nil
}

// Tokens nombres de marcador presentes en text, sin repetir y en orden de aparición.
func Tokens(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
