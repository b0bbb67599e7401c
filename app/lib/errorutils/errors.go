package errorutils

import "fmt"

type InternalError struct {
	PublicDesc  string
	PrivateDesc string
}

func (e InternalError) Error() string {
	return e.PrivateDesc
}

func NewInternalError(publicDesc string, err error) *InternalError {
	return &InternalError{
		PublicDesc:  publicDesc,
		PrivateDesc: fmt.Sprintf("%s: %s", publicDesc, err),
	}
}
