package probe

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// isZeroHex reports whether a hex payload is empty or all zero bytes.
func isZeroHex(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return true
	}
	return strings.Trim(s, "0") == ""
}

// DecodeString decodes an ABI-encoded string return value. Legacy tokens
// return bytes32 instead of a dynamic string; both layouts are handled.
func DecodeString(data string) (string, bool) {
	raw, err := hex.DecodeString(strings.TrimPrefix(data, "0x"))
	if err != nil || len(raw) == 0 {
		return "", false
	}

	// Dynamic string: word 0 is the offset, the word at the offset is the
	// length, the bytes follow.
	if len(raw) >= 64 {
		offset := new(big.Int).SetBytes(raw[:32])
		if offset.IsInt64() {
			off := offset.Int64()
			if off+32 <= int64(len(raw)) {
				length := new(big.Int).SetBytes(raw[off : off+32])
				if length.IsInt64() {
					l := length.Int64()
					if l >= 0 && off+32+l <= int64(len(raw)) {
						s := strings.TrimRight(string(raw[off+32:off+32+l]), "\x00")
						if isPrintable(s) {
							return s, s != ""
						}
					}
				}
			}
		}
	}

	// bytes32 fallback.
	if len(raw) == 32 {
		s := strings.TrimRight(string(raw), "\x00")
		if isPrintable(s) && s != "" {
			return s, true
		}
	}
	return "", false
}

// DecodeUint256 decodes a single uint256 return word.
func DecodeUint256(data string) (*big.Int, bool) {
	s := strings.TrimPrefix(data, "0x")
	if s == "" {
		return nil, false
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) < 32 {
		return nil, false
	}
	return new(big.Int).SetBytes(raw[:32]), true
}

// DecodeAddress decodes an address return word (last 20 bytes of the first
// 32-byte word). A zero address decodes successfully; callers that treat
// zero as absent check for it themselves.
func DecodeAddress(data string) (common.Address, bool) {
	s := strings.TrimPrefix(data, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) < 32 {
		return common.Address{}, false
	}
	return common.BytesToAddress(raw[12:32]), true
}

// DecodeReserves decodes the first two words of a getReserves() return:
// reserve0 and reserve1. The third word (block timestamp) is ignored.
func DecodeReserves(data string) (reserve0, reserve1 *big.Int, ok bool) {
	s := strings.TrimPrefix(data, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) < 64 {
		return nil, nil, false
	}
	return new(big.Int).SetBytes(raw[:32]), new(big.Int).SetBytes(raw[32:64]), true
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}
