package errors

import "fmt"

// CompileError reports an annotation, directive or handler signature that cannot
// be turned into a command grammar. It is only ever produced at registration time.
type CompileError struct {
	Command string
	Param   string
	Msg     string
	Err     error
}

func (e *CompileError) Error() string {
	text := e.Msg
	if e.Param != "" {
		text = fmt.Sprintf("parameter '%s': %s", e.Param, text)
	}
	if e.Command != "" {
		text = fmt.Sprintf("command '%s': %s", e.Command, text)
	}
	if e.Err != nil {
		text = fmt.Sprintf("%s: %v", text, e.Err)
	}

	return newMessage("%s", text)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func Compile(param string, format string, args ...any) *CompileError {
	return &CompileError{
		Param: param,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func CompileWrap(err error, param string, format string, args ...any) *CompileError {
	return &CompileError{
		Param: param,
		Msg:   fmt.Sprintf(format, args...),
		Err:   err,
	}
}

// RegistrationConflict is returned when a command path or alias path is already taken.
type RegistrationConflict struct {
	Path  string
	Alias bool
}

func (e *RegistrationConflict) Error() string {
	if e.Alias {
		return newMessage("alias '%s' collides with an existing command path", e.Path)
	}
	return newMessage("command '%s' already registered", e.Path)
}

func Conflict(path string, alias bool) *RegistrationConflict {
	return &RegistrationConflict{
		Path:  path,
		Alias: alias,
	}
}
