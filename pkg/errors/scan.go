package errors

type ErrNoToolFound struct {
	Err    *Error
	Folder string
}

func (e *ErrNoToolFound) Error() string {
	return e.Err.Error()
}

func NewErrNoToolFound(folder string) *ErrNoToolFound {
	return &ErrNoToolFound{
		Err:    &Error{Msgs: []any{"no tool instance found in " + folder}},
		Folder: folder,
	}
}
