package chaincfg

import "errors"

var (
	// ErrUnknownChain is returned when a chain key matches no table entry
	// and no alias.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrNoEndpoints is returned when a chain entry carries no RPC endpoints.
	ErrNoEndpoints = errors.New("no endpoints configured")
)
