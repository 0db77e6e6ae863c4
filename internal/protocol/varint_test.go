package protocol

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarIntVectors(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		wire  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"max_1byte", 127, []byte{0x7f}},
		{"min_2byte", 128, []byte{0x80, 0x01}},
		{"255", 255, []byte{0xff, 0x01}},
		{"25565", 25565, []byte{0xdd, 0xc7, 0x01}},
		{"max_3byte", 2097151, []byte{0xff, 0xff, 0x7f}},
		{"max_int32", math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{"neg_one", -1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{"min_int32", math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(VarInt(tc.value))
			require.NoError(t, err)
			require.Equal(t, tc.wire, got)
			require.Equal(t, len(tc.wire), VarInt(tc.value).ByteLen())

			var decoded VarInt
			require.NoError(t, Unmarshal(tc.wire, &decoded))
			require.Equal(t, VarInt(tc.value), decoded)

			v, n, err := ConsumeVarInt(tc.wire)
			require.NoError(t, err)
			require.Equal(t, tc.value, v)
			require.Equal(t, len(tc.wire), n)
		})
	}
}

func TestVarLongVectors(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		wire  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"min_2byte", 128, []byte{0x80, 0x01}},
		{"max_int32", math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{"max_int64", math.MaxInt64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
		{"neg_one", -1, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
		{"min_int32", math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0xf8, 0xff, 0xff, 0xff, 0xff, 0x01}},
		{"min_int64", math.MinInt64, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(VarLong(tc.value))
			require.NoError(t, err)
			require.Equal(t, tc.wire, got)
			require.Equal(t, len(tc.wire), VarLong(tc.value).ByteLen())

			var decoded VarLong
			require.NoError(t, Unmarshal(tc.wire, &decoded))
			require.Equal(t, VarLong(tc.value), decoded)
		})
	}
}

func TestVarIntByteLenIsMinimal(t *testing.T) {
	require.Equal(t, 1, VarInt(0).ByteLen())
	for groups := 1; groups < MaxVarIntLen; groups++ {
		lo := int32(1) << (7 * (groups - 1))
		hi := int32(1)<<(7*groups) - 1
		if groups == 1 {
			lo = 0
		}
		require.Equal(t, groups, VarInt(lo).ByteLen(), "lo %d", lo)
		require.Equal(t, groups, VarInt(hi).ByteLen(), "hi %d", hi)
		require.Equal(t, groups+1, VarInt(hi+1).ByteLen(), "hi+1 %d", hi+1)
	}
	require.Equal(t, MaxVarIntLen, VarInt(math.MaxInt32).ByteLen())
}

func TestVarLongByteLenIsMinimal(t *testing.T) {
	require.Equal(t, 1, VarLong(0).ByteLen())
	for groups := 1; groups < MaxVarLongLen-1; groups++ {
		hi := int64(1)<<(7*groups) - 1
		require.Equal(t, groups, VarLong(hi).ByteLen(), "hi %d", hi)
		require.Equal(t, groups+1, VarLong(hi+1).ByteLen(), "hi+1 %d", hi+1)
	}
	require.Equal(t, 9, VarLong(math.MaxInt64).ByteLen())
}

func TestNegativeVarIntsUseMaxGroups(t *testing.T) {
	for _, v := range []int32{-1, -2, -128, -25565, math.MinInt32} {
		require.Equal(t, MaxVarIntLen, VarInt(v).ByteLen(), "value %d", v)
		got, err := Marshal(VarInt(v))
		require.NoError(t, err)
		require.Len(t, got, MaxVarIntLen)
	}
	for _, v := range []int64{-1, -2, math.MinInt32, math.MinInt64} {
		require.Equal(t, MaxVarLongLen, VarLong(v).ByteLen(), "value %d", v)
		got, err := Marshal(VarLong(v))
		require.NoError(t, err)
		require.Len(t, got, MaxVarLongLen)
	}
}

func TestVarIntRoundTripSweep(t *testing.T) {
	values := []int32{math.MinInt32, math.MaxInt32}
	for shift := 0; shift < 32; shift++ {
		v := int32(1) << shift
		values = append(values, v, v-1, v+1, -v, -v-1)
	}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, VarInt(v).Encode(&buf))
		require.Equal(t, VarInt(v).ByteLen(), buf.Len())

		var decoded VarInt
		require.NoError(t, decoded.Decode(&buf))
		require.Equal(t, VarInt(v), decoded)
	}
}

func TestVarLongRoundTripSweep(t *testing.T) {
	values := []int64{math.MinInt64, math.MaxInt64}
	for shift := 0; shift < 64; shift++ {
		v := int64(1) << shift
		values = append(values, v, v-1, v+1, -v, -v-1)
	}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, VarLong(v).Encode(&buf))
		require.Equal(t, VarLong(v).ByteLen(), buf.Len())

		var decoded VarLong
		require.NoError(t, decoded.Decode(&buf))
		require.Equal(t, VarLong(v), decoded)
	}
}

func TestVarIntDecodeTooManyGroups(t *testing.T) {
	var v VarInt
	err := Unmarshal([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, &v)
	require.ErrorIs(t, err, ErrMalformedVarInt)

	// payload bits do not matter once the group limit is crossed
	err = Unmarshal([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, &v)
	require.ErrorIs(t, err, ErrMalformedVarInt)

	_, _, err = ConsumeVarInt([]byte{0x80, 0x80, 0x80, 0x80, 0x80})
	require.ErrorIs(t, err, ErrMalformedVarInt)
}

func TestVarLongDecodeTooManyGroups(t *testing.T) {
	var v VarLong
	err := Unmarshal([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, &v)
	require.ErrorIs(t, err, ErrMalformedVarLong)
}

func TestVarIntDecodeTruncated(t *testing.T) {
	var v VarInt
	require.ErrorIs(t, Unmarshal(nil, &v), ErrUnexpectedEOF)
	require.ErrorIs(t, Unmarshal([]byte{0x80, 0x80}, &v), ErrUnexpectedEOF)

	_, n, err := ConsumeVarInt([]byte{0xdd, 0xc7})
	require.ErrorIs(t, err, ErrUnexpectedEOF)
	require.Zero(t, n)
}

func TestVarIntLengthPrefix(t *testing.T) {
	var v VarInt
	v.SetCount(300)
	require.Equal(t, 300, v.Count())
	require.Equal(t, 2, v.ByteLen())
}
