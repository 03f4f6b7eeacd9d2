package value

import "errors"

var (
	errConstAddress = errors.New("cannot rebind a const_address reference")
	errConstValue   = errors.New("cannot mutate a const_value reference")
)
