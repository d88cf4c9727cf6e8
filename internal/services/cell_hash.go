package services

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Decimal digits kept when fingerprinting a cell origin.
const hashPrecision = 6

// CellHash returns the identifier of the cell whose origin corner is (lat, lon).
//
// Both values are rounded to six decimals before hashing, so two computations
// of the same origin that differ only by floating-point noise collide.
func CellHash(lat, lon float64) string {
	key := fmt.Sprintf("%.*f,%.*f", hashPrecision, lat, hashPrecision, lon)
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
