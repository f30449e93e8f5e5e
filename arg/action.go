package arg

// Action decides what happens to a flag or option each time it is seen.
type Action int

const (
	ActionStore Action = iota
	ActionStoreTrue
	ActionStoreFalse
	ActionStoreConst
	ActionCount
	ActionAppend
	ActionExtend
	ActionCustom
)

// CustomFunc folds one occurrence of a flag into its bound value. previous is the value
// bound so far, or the default on the first occurrence; value holds the converted
// value tokens of this occurrence.
type CustomFunc func(previous, value any) (any, error)

func (a Action) String() string {
	switch a {
	case ActionStoreTrue:
		return "store_true"
	case ActionStoreFalse:
		return "store_false"
	case ActionStoreConst:
		return "store_const"
	case ActionCount:
		return "count"
	case ActionAppend:
		return "append"
	case ActionExtend:
		return "extend"
	case ActionCustom:
		return "custom"
	default:
		return "store"
	}
}

// TakesValues reports whether the action consumes value tokens after the flag name.
func (a Action) TakesValues() bool {
	switch a {
	case ActionStoreTrue, ActionStoreFalse, ActionStoreConst, ActionCount:
		return false
	default:
		return true
	}
}

// Repeatable reports whether repeated occurrences accumulate instead of overwrite.
func (a Action) Repeatable() bool {
	return a == ActionCount || a == ActionAppend || a == ActionExtend || a == ActionCustom
}
