package argtree

import (
	"context"
	"fmt"
	"reflect"

	"github.com/mwantia/argtree/errors"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// handler is a registered Go func together with the layout of its parameter list:
// an optional receiver, an optional context and one parameter per declared argument.
type handler struct {
	fn       reflect.Value
	receiver reflect.Type
	context  bool
	params   []reflect.Type
	variadic bool
	result   bool
	err      bool
}

func newHandler(fn any, declared int) (*handler, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: expected a func, got %T", errors.ErrInvalidHandler, fn)
	}

	t := v.Type()
	h := &handler{
		fn:       v,
		variadic: t.IsVariadic(),
	}

	offset := 0
	switch n := t.NumIn(); {
	case n == declared+2 && t.In(1) == contextType:
		h.receiver = t.In(0)
		h.context = true
		offset = 2
	case n == declared+1 && t.In(0) == contextType:
		h.context = true
		offset = 1
	case n == declared+1:
		h.receiver = t.In(0)
		offset = 1
	case n != declared:
		return nil, fmt.Errorf("%w: func takes %d parameters but %d are declared", errors.ErrInvalidHandler, n, declared)
	}
	if h.variadic && declared == 0 {
		return nil, fmt.Errorf("%w: the variadic parameter must be declared", errors.ErrInvalidHandler)
	}

	h.params = make([]reflect.Type, declared)
	for i := 0; i < declared; i++ {
		h.params[i] = t.In(offset + i)
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			h.err = true
		} else {
			h.result = true
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("%w: second result must be an error", errors.ErrInvalidHandler)
		}
		h.result = true
		h.err = true
	default:
		return nil, fmt.Errorf("%w: func returns %d results", errors.ErrInvalidHandler, t.NumOut())
	}

	return h, nil
}

// call converts args to the declared parameter types and invokes the func.
// A panic inside the func is returned as an error wrapping ErrHandlerPanic.
func (h *handler) call(ctx context.Context, instance any, args []any) (result any, err error) {
	in := make([]reflect.Value, 0, len(args)+2)

	if h.receiver != nil {
		if instance == nil {
			return nil, fmt.Errorf("%w: method handler needs an instance", errors.ErrInvalidHandler)
		}
		rv := reflect.ValueOf(instance)
		if !rv.Type().AssignableTo(h.receiver) {
			return nil, fmt.Errorf("%w: instance %T cannot be used as %s", errors.ErrInvalidHandler, instance, h.receiver)
		}
		in = append(in, rv)
	}
	if h.context {
		in = append(in, reflect.ValueOf(&ctx).Elem())
	}

	for i, a := range args {
		v, err := convert(a, h.params[i])
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", errors.ErrHandlerPanic, r)
		}
	}()

	var out []reflect.Value
	if h.variadic {
		out = h.fn.CallSlice(in)
	} else {
		out = h.fn.Call(in)
	}

	if h.err {
		if e := out[len(out)-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
	}
	if h.result {
		result = out[0].Interface()
	}
	return result, err
}

// convert turns a bound value into a value of the target type. nil becomes the zero
// value, lists convert element by element and a scalar becomes a one-element slice.
func convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch target.Kind() {
	case reflect.Slice:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			rv = reflect.ValueOf([]any{value})
		}
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := convert(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	case reflect.Array:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			break
		}
		if rv.Len() != target.Len() {
			return reflect.Value{}, fmt.Errorf("%w: %d values do not fit %s", errors.ErrInvalidHandler, rv.Len(), target)
		}
		out := reflect.New(target).Elem()
		for i := 0; i < rv.Len(); i++ {
			elem, err := convert(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	case reflect.String:
		return reflect.ValueOf(fmt.Sprint(value)).Convert(target), nil
	}

	if rv.Type().ConvertibleTo(target) && convertibleKind(rv.Kind()) == convertibleKind(target.Kind()) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", errors.ErrInvalidHandler, value, target)
}

// convertibleKind groups kinds between which a plain Go conversion keeps the meaning.
func convertibleKind(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return k.String()
	}
}
