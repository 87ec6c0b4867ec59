package tui

import (
	"errors"
	"fmt"

	"github.com/muesli/termenv"

	"github.com/aretw0/nutshell/pkg/domain"
)

var kindColors = map[domain.Kind]string{
	domain.KindUndefinedReference:  "#f472b6",
	domain.KindSyntaxInconsistency: "#fb7185",
	domain.KindValueRange:          "#fbbf24",
	domain.KindGeometry:            "#a78bfa",
	domain.KindUnsupported:         "#818cf8",
}

// Diagnostic formats err as "line:col: Kind: message", coloring the kind for
// profile p. termenv.Ascii yields plain text.
func Diagnostic(p termenv.Profile, err error) string {
	var de *domain.Error
	if !errors.As(err, &de) || err != error(de) {
		return err.Error()
	}
	kind := p.String(de.Kind.String()).Foreground(p.Color(kindColors[de.Kind])).Bold()
	if de.Span.IsZero() {
		return fmt.Sprintf("%s: %s", kind, de.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", de.Span, kind, de.Msg)
}
