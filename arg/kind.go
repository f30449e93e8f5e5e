package arg

// Kind tells how an argument is matched on the command line.
type Kind int

const (
	Positional Kind = iota
	Flag
	Option
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Option:
		return "option"
	default:
		return "positional"
	}
}

// Marker returns the leading marker used on the command line for this kind.
func (k Kind) Marker() string {
	switch k {
	case Flag:
		return "-"
	case Option:
		return "--"
	default:
		return ""
	}
}

// KindOf derives the kind from a marker-prefixed name such as "-f" or "--foo".
func KindOf(name string) (Kind, string) {
	switch {
	case len(name) > 2 && name[:2] == "--":
		return Option, name[2:]
	case len(name) > 1 && name[0] == '-' && name[1] != '-':
		return Flag, name[1:]
	default:
		return Positional, name
	}
}
