package hive

import (
	"bytes"
	"errors"
	"math/big"
)

// Bitcoin base58 alphabet, shared by Graphene-family chains.
const b58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var errBadBase58 = errors.New("bad base58 character")

var b58Index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(b58Alphabet); i++ {
		idx[b58Alphabet[i]] = int8(i)
	}
	return idx
}()

func base58Encode(input []byte) string {
	x := new(big.Int).SetBytes(input)
	radix := big.NewInt(58)
	mod := new(big.Int)

	var out []byte
	for x.Sign() > 0 {
		x.DivMod(x, radix, mod)
		out = append(out, b58Alphabet[mod.Int64()])
	}

	// leading zero bytes encode as '1'
	for _, b := range input {
		if b != 0 {
			break
		}
		out = append(out, b58Alphabet[0])
	}

	// reverse
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func base58Decode(s string) ([]byte, error) {
	x := big.NewInt(0)
	radix := big.NewInt(58)

	for i := 0; i < len(s); i++ {
		d := b58Index[s[i]]
		if d < 0 {
			return nil, errBadBase58
		}
		x.Mul(x, radix)
		x.Add(x, big.NewInt(int64(d)))
	}

	decoded := x.Bytes()

	// restore leading zero bytes encoded as '1'
	leading := 0
	for leading < len(s) && s[leading] == b58Alphabet[0] {
		leading++
	}
	if leading > 0 {
		decoded = append(bytes.Repeat([]byte{0}, leading), decoded...)
	}
	return decoded, nil
}
