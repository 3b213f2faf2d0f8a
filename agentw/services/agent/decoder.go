package agent

import "unicode/utf8"

// Decoder turns a chunked byte stream into text. Chunk boundaries can land
// inside a multi-byte rune, so a trailing partial sequence is held back and
// prepended to the next chunk. Flush drains whatever is still pending after
// the stream ends.
type Decoder struct {
	pending []byte
}

func (d *Decoder) Decode(chunk []byte) string {
	buf := append(d.pending, chunk...)
	d.pending = nil

	// Walk back at most one rune's worth of bytes looking for the start of
	// an incomplete sequence.
	cut := len(buf)
	lo := len(buf) - utf8.UTFMax
	if lo < 0 {
		lo = 0
	}
	for i := len(buf) - 1; i >= lo; i-- {
		if utf8.RuneStart(buf[i]) {
			if !utf8.FullRune(buf[i:]) {
				cut = i
			}
			break
		}
	}

	if cut < len(buf) {
		d.pending = append([]byte(nil), buf[cut:]...)
	}
	return string(buf[:cut])
}

// Flush emits a replacement character for a dangling partial sequence,
// mirroring a non-fatal text decoder's final flush.
func (d *Decoder) Flush() string {
	if len(d.pending) == 0 {
		return ""
	}
	d.pending = nil
	return string(utf8.RuneError)
}
