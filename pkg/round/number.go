package round

import "strconv"

// Number is the index of a round within one execution, starting at 1.
type Number uint16

// String returns a base 10 representation of the Number.
func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}
