package protocol

import (
	"fmt"
	"io"
)

// MaxSequenceLen caps the element or byte count a container may declare.
const MaxSequenceLen = 1024 * 1024

// preallocLimit bounds the capacity reserved from an untrusted count.
const preallocLimit = 1024

// LengthPrefix is an integer codec that can also carry an element count.
type LengthPrefix interface {
	Codec
	Count() int
	SetCount(n int)
}

// LengthPtr constrains P to *L where *L is a LengthPrefix.
type LengthPtr[L any] interface {
	*L
	LengthPrefix
}

func prefixFor[L any, P LengthPtr[L]](n int) (P, error) {
	var l L
	p := P(&l)
	p.SetCount(n)
	if p.Count() != n {
		return nil, fmt.Errorf("%w: %d does not fit the length prefix", ErrSequenceTooLong, n)
	}
	return p, nil
}

func readCount[L any, P LengthPtr[L]](r io.Reader) (int, error) {
	var l L
	p := P(&l)
	if err := p.Decode(r); err != nil {
		return 0, err
	}
	n := p.Count()
	if n < 0 || n > MaxSequenceLen {
		return 0, fmt.Errorf("%w: declared %d > %d", ErrSequenceTooLong, n, MaxSequenceLen)
	}
	return n, nil
}

// RemainingBytes has no prefix: it decodes everything left in the source.
// It is only valid as the last field of a packet.
type RemainingBytes []byte

func (b RemainingBytes) ByteLen() int { return len(b) }

func (b RemainingBytes) Encode(w io.Writer) error {
	return writeAll(w, b)
}

func (b *RemainingBytes) Decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return readErr(err)
	}
	*b = data
	return nil
}

// PrefixedBytes is a byte blob behind a count encoded with L.
type PrefixedBytes[L any, PL LengthPtr[L]] []byte

func (b PrefixedBytes[L, PL]) ByteLen() int {
	var l L
	PL(&l).SetCount(len(b))
	return PL(&l).ByteLen() + len(b)
}

func (b PrefixedBytes[L, PL]) Encode(w io.Writer) error {
	prefix, err := prefixFor[L, PL](len(b))
	if err != nil {
		return err
	}
	if err := prefix.Encode(w); err != nil {
		return err
	}
	return writeAll(w, b)
}

func (b *PrefixedBytes[L, PL]) Decode(r io.Reader) error {
	n, err := readCount[L, PL](r)
	if err != nil {
		return err
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return err
	}
	*b = buf
	return nil
}

// PrefixedSlice is a sequence of V behind an element count encoded with L.
type PrefixedSlice[L any, PL LengthPtr[L], V any, PV Ptr[V]] []V

// ByteLen counts the prefix for the element count, not the byte size.
func (s PrefixedSlice[L, PL, V, PV]) ByteLen() int {
	var l L
	PL(&l).SetCount(len(s))
	total := PL(&l).ByteLen()
	for i := range s {
		total += PV(&s[i]).ByteLen()
	}
	return total
}

func (s PrefixedSlice[L, PL, V, PV]) Encode(w io.Writer) error {
	prefix, err := prefixFor[L, PL](len(s))
	if err != nil {
		return err
	}
	if err := prefix.Encode(w); err != nil {
		return err
	}
	for i := range s {
		if err := PV(&s[i]).Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (s *PrefixedSlice[L, PL, V, PV]) Decode(r io.Reader) error {
	n, err := readCount[L, PL](r)
	if err != nil {
		return err
	}
	items := make([]V, 0, min(n, preallocLimit))
	for i := 0; i < n; i++ {
		var item V
		if err := PV(&item).Decode(r); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
	}
	*s = items
	return nil
}

// Optional is a presence byte followed by V when present.
type Optional[V any, PV Ptr[V]] struct {
	Value   V
	Present bool
}

// Some wraps v as a present Optional.
func Some[V any, PV Ptr[V]](v V) Optional[V, PV] {
	return Optional[V, PV]{Value: v, Present: true}
}

// Get returns the value and whether it is present.
func (o Optional[V, PV]) Get() (V, bool) {
	return o.Value, o.Present
}

func (o Optional[V, PV]) ByteLen() int {
	if !o.Present {
		return 1
	}
	return 1 + PV(&o.Value).ByteLen()
}

func (o Optional[V, PV]) Encode(w io.Writer) error {
	if err := Bool(o.Present).Encode(w); err != nil {
		return err
	}
	if !o.Present {
		return nil
	}
	return PV(&o.Value).Encode(w)
}

func (o *Optional[V, PV]) Decode(r io.Reader) error {
	var present Bool
	if err := present.Decode(r); err != nil {
		return err
	}
	if !present {
		*o = Optional[V, PV]{}
		return nil
	}
	var v V
	if err := PV(&v).Decode(r); err != nil {
		return err
	}
	*o = Optional[V, PV]{Value: v, Present: true}
	return nil
}

// Instantiations used by the packet catalogue.
type (
	ByteArray         = PrefixedBytes[VarInt, *VarInt]
	OptionalString    = Optional[String, *String]
	OptionalByteArray = Optional[ByteArray, *ByteArray]
)
