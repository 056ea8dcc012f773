package orders

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// suffixSpace is 36^8: eight base36 digits of randomness behind the
// millisecond timestamp. Collisions are negligible at human checkout rates;
// the unique index on order_number is the backstop.
const suffixSpace = int64(2821109907456)

// GenerateOrderNumber produces a human-shareable reference of the form
// {PREFIX}-{base36 timestamp}-{base36 random}, uppercased.
func GenerateOrderNumber(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := strconv.FormatInt(rand.Int63n(suffixSpace), 36)
	for len(suffix) < 8 {
		suffix = "0" + suffix
	}

	return strings.ToUpper(prefix + "-" + ts + "-" + suffix)
}
