package domain

import (
	"sort"
	"strings"
)

// FieldErrors errores de validación por campo. Se muestran junto al campo y no
// disparan ninguna llamada externa.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, "; ")
}

// OrNil devuelve nil si no hay errores; evita el nil tipado en un error.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
