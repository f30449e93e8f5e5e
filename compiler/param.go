package compiler

import (
	"net/url"
	"reflect"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/mwantia/argtree/annotation"
	"github.com/mwantia/argtree/coerce"
)

// Param declares one handler parameter.
type Param struct {
	Name string
	// Annotation is an expression such as "Option | Exactly2[int]".
	Annotation string
	// Tokens are folded after the tokens parsed from Annotation.
	Tokens []annotation.Token
	// Default is used when the argument is absent. It is only applied when Optional
	// is set or Default is non-nil, so that an explicit nil default is expressible.
	Default  any
	Optional bool
	// GoType is the type of the matching handler parameter, if known. It is used to
	// infer the element type and boolean switches when the annotation leaves them open.
	GoType reflect.Type
}

func (p Param) hasDefault() bool {
	return p.Optional || p.Default != nil
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	semverType   = reflect.TypeOf((*semver.Version)(nil))
	urlType      = reflect.TypeOf((*url.URL)(nil))
)

// elemType maps a Go parameter type to a registered element type name.
// Slices map through their element type.
func elemType(t reflect.Type) string {
	if t == nil {
		return ""
	}
	switch t {
	case durationType:
		return coerce.Duration
	case uuidType:
		return coerce.UUID
	case semverType:
		return coerce.Semver
	case urlType:
		return coerce.URL
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return ""
		}
		return elemType(t.Elem())
	case reflect.String:
		return coerce.String
	case reflect.Bool:
		return coerce.Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return coerce.Int
	case reflect.Float32, reflect.Float64:
		return coerce.Float
	}
	return ""
}
