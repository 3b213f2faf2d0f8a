package agent

import "testing"

func TestDecoderASCII(t *testing.T) {
	var d Decoder
	got := d.Decode([]byte("hello"))
	if got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	if tail := d.Flush(); tail != "" {
		t.Errorf("expected empty flush, got %q", tail)
	}
}

func TestDecoderSplitTwoByteRune(t *testing.T) {
	// "é" is C3 A9; the boundary falls between the two bytes.
	var d Decoder
	first := d.Decode([]byte{'H', 0xC3})
	if first != "H" {
		t.Errorf("expected %q before the rune completes, got %q", "H", first)
	}
	second := d.Decode([]byte{0xA9, 'y'})
	if second != "éy" {
		t.Errorf("expected %q, got %q", "éy", second)
	}
	if tail := d.Flush(); tail != "" {
		t.Errorf("expected empty flush, got %q", tail)
	}
}

func TestDecoderSplitFourByteRune(t *testing.T) {
	emoji := []byte("\U0001F680") // F0 9F 9A 80
	var d Decoder
	if got := d.Decode(emoji[:1]); got != "" {
		t.Errorf("expected nothing after one byte, got %q", got)
	}
	if got := d.Decode(emoji[1:3]); got != "" {
		t.Errorf("expected nothing after three bytes, got %q", got)
	}
	if got := d.Decode(emoji[3:]); got != "\U0001F680" {
		t.Errorf("expected the rocket, got %q", got)
	}
}

func TestDecoderFlushDanglingPartial(t *testing.T) {
	var d Decoder
	d.Decode([]byte{0xE2, 0x82}) // first two bytes of a three-byte rune
	if tail := d.Flush(); tail != "�" {
		t.Errorf("expected replacement character, got %q", tail)
	}
	// Flush drains; a second call yields nothing.
	if tail := d.Flush(); tail != "" {
		t.Errorf("expected empty second flush, got %q", tail)
	}
}
