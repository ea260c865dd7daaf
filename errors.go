package own

import "errors"

// ErrNull is the panic value of Value on an empty handle.
var ErrNull = errors.New("own: dereference of empty handle")

// noCopy makes go vet's copylocks check report copies of the enclosing struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
