// Package merkle builds and verifies keccak256 Merkle trees with sorted pairs,
// the layout whitelist proofs are produced in off-chain.
package merkle

import (
	"bytes"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Leaf is keccak256(abi.encodePacked(address, string(allowance))).
func Leaf(addr common.Address, allowance uint64) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes(), []byte(strconv.FormatUint(allowance, 10)))
}

func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a[:], b[:])
}

// Verify reports whether proof links leaf to root.
func Verify(proof []common.Hash, root, leaf common.Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed == root
}

type Tree struct {
	layers [][]common.Hash
}

// NewTree builds the tree bottom-up. An unpaired node at the end of a layer
// is promoted to the next layer unchanged.
func NewTree(leaves []common.Hash) *Tree {
	layer := append([]common.Hash(nil), leaves...)
	t := &Tree{layers: [][]common.Hash{layer}}

	for len(layer) > 1 {
		next := make([]common.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 == len(layer) {
				next = append(next, layer[i])
				continue
			}
			next = append(next, hashPair(layer[i], layer[i+1]))
		}
		t.layers = append(t.layers, next)
		layer = next
	}

	return t
}

func (t *Tree) Root() common.Hash {
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return common.Hash{}
	}
	return top[0]
}

// Proof returns the sibling path of leaf, or false if leaf is not in the tree.
func (t *Tree) Proof(leaf common.Hash) ([]common.Hash, bool) {
	index := -1
	for i, l := range t.layers[0] {
		if l == leaf {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false
	}

	var proof []common.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		pair := index + 1
		if index%2 == 1 {
			pair = index - 1
		}
		if pair < len(layer) {
			proof = append(proof, layer[pair])
		}
		index /= 2
	}

	return proof, true
}
