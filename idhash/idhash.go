// Package idhash derives stable item identifiers from names. The same
// name always maps to the same id, so user state stored against an id
// survives library rescans.
package idhash

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/jxskiss/base62"
)

const idLength = 20

var digits = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

// IdHash returns a deterministic 20-character base62 id for name.
// It hashes with sha256, takes the first 16 bytes as a big-endian
// integer, drops the low 9 bits to fit 119 bits, and emits 20 base62
// digits least-significant first.
func IdHash(name string) string {
	sum := sha256.Sum256([]byte(name))

	n := new(big.Int).SetBytes(sum[:16])
	n.Rsh(n, 9)

	base := big.NewInt(62)
	rem := new(big.Int)

	id := make([]byte, 0, idLength)
	for i := 0; i < idLength; i++ {
		n.DivMod(n, base, rem)
		id = append(id, digits[rem.Int64()])
	}
	return string(id)
}

// Hash returns a base62-encoded id derived from sha256 of s.
func Hash(s string) string {
	return HashBytes([]byte(s))
}

// HashBytes returns a base62-encoded id derived from sha256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return base62.StdEncoding.EncodeToString(sum[:16])
}

// NewRandomID generates a random base62-encoded id.
func NewRandomID() string {
	var r [16]byte
	if _, err := rand.Read(r[:]); err != nil {
		panic(err)
	}
	return base62.StdEncoding.EncodeToString(r[:])
}
