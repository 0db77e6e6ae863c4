package protocol

import "testing"

func FuzzVarIntDecode(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x80, 0x01})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0x0f})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		var v VarInt
		if err := Unmarshal(data, &v); err != nil {
			return
		}
		got, err := Marshal(v)
		if err != nil {
			t.Fatalf("re-encode %d: %v", v, err)
		}
		var again VarInt
		if err := Unmarshal(got, &again); err != nil || again != v {
			t.Fatalf("round-trip mismatch: %d -> %x -> %d (%v)", v, got, again, err)
		}
		if len(got) != v.ByteLen() {
			t.Fatalf("byte len mismatch for %d: %d vs %d", v, len(got), v.ByteLen())
		}
	})
}

func FuzzStringDecode(f *testing.F) {
	f.Add([]byte{0x03, 'a', 'b', 'c'})
	f.Add([]byte{0x02, 0xc3, 0x28})
	f.Add([]byte{0xff, 0xff, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		var s String
		if err := Unmarshal(data, &s); err != nil {
			return
		}
		got, err := Marshal(s)
		if err != nil {
			t.Fatalf("re-encode %q: %v", s, err)
		}
		var again String
		if err := Unmarshal(got, &again); err != nil || again != s {
			t.Fatalf("round-trip mismatch: %q -> %x -> %q (%v)", s, got, again, err)
		}
		if len(got) != s.ByteLen() {
			t.Fatalf("byte len mismatch for %q: %d vs %d", s, len(got), s.ByteLen())
		}
	})
}
