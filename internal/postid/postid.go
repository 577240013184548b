// Package postid derives the short shareable identifier for a council post.
package postid

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf16"
)

// Hash combines content, author and the creation instant (millisecond
// precision) into an 8-character uppercase hex identifier. The accumulator
// is a rolling polynomial hash (h = h*31 + code unit) over UTF-16 code
// units with 32-bit signed wraparound; the absolute value is rendered as
// zero-padded hex. Not cryptographic — collisions are guarded by the
// store's unique index.
func Hash(content, author string, at time.Time) string {
	str := content + "_" + author + "_" + strconv.FormatInt(at.UnixMilli(), 10)
	var h int32
	for _, u := range utf16.Encode([]rune(str)) {
		h = h*31 + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("%08X", v)
}
