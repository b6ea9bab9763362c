package rpcpool

import "errors"

// ErrUnsupportedMethod is returned when a caller asks for a method outside
// the pool's closed read set. This is a local programmer error, not a remote
// failure.
var ErrUnsupportedMethod = errors.New("unsupported rpc method")
