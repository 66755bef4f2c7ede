package logging

import (
	sdk "github.com/onflow/flow-go-sdk"
)

// ID returns the bytes of a transaction id, for use with zerolog's Hex field.
func ID(id sdk.Identifier) []byte {
	return id[:]
}

// Addresses returns the 0x-prefixed hex form of each address.
func Addresses(addrs []sdk.Address) []string {
	ss := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		ss = append(ss, "0x"+addr.Hex())
	}
	return ss
}
