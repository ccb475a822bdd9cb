package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ethereum/go-ethereum/common"
)

// RandomAlphaNum generates random alphanumeric string
// in case length <= 0 it returns error
func RandomAlphaNum(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}

	return string(randomString), nil
}

// RandomAddress returns a random non-zero account address.
func RandomAddress() common.Address {
	var addr common.Address
	for addr == (common.Address{}) {
		for i := range addr {
			addr[i] = gofakeit.Uint8()
		}
	}
	return addr
}

// RandomAddresses returns n distinct random addresses.
func RandomAddresses(n int) []common.Address {
	seen := make(map[common.Address]struct{}, n)
	addrs := make([]common.Address, 0, n)
	for len(addrs) < n {
		addr := RandomAddress()
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}
	return addrs
}
