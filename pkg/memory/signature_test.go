package memory

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return logrus.NewEntry(log)
}

func TestParseSignature(t *testing.T) {
	type scenario struct {
		pattern  string
		valid    bool
		expected Signature
	}

	scenarios := []scenario{
		{
			"5A ?? 90 9E",
			true,
			Signature{{Value: 0x5a}, {Wildcard: true}, {Value: 0x90}, {Value: 0x9e}},
		},
		{
			"8b 15",
			true,
			Signature{{Value: 0x8b}, {Value: 0x15}},
		},
		{"", false, nil},
		{"5", false, nil},
		{"5A5A", false, nil},
		{"ZZ", false, nil},
		{"5A ?", false, nil},
	}

	for _, s := range scenarios {
		sig, err := ParseSignature(s.pattern)
		if !s.valid {
			assert.Error(t, err, "pattern %q", s.pattern)
			continue
		}
		assert.NoError(t, err, "pattern %q", s.pattern)
		assert.Equal(t, s.expected, sig, "pattern %q", s.pattern)
	}
}

func mustParse(t *testing.T, pattern string) Signature {
	sig, err := ParseSignature(pattern)
	assert.NoError(t, err)
	return sig
}

func TestFindSignatureAtOffset(t *testing.T) {
	const base = 0x1000

	for _, offset := range []int{0, 1, 100, 250} {
		buf := make([]byte, 256)
		copy(buf[offset:], []byte{0x93, 0xba, 0x00, 0xfb, 0x90, 0x90})

		regions := []MapRegion{{Start: base, End: base + uint64(len(buf)), Perms: "r--p"}}
		addr, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "93 BA 00 FB 90 90"), discardLogger())

		assert.True(t, found, "offset %d", offset)
		assert.Equal(t, uint64(base+offset), addr, "offset %d", offset)
	}
}

func TestFindSignatureWithWildcards(t *testing.T) {
	const base = 0x4000
	buf := make([]byte, 128)
	copy(buf[40:], []byte{0x93, 0xba, 0x11, 0xfb, 0x22, 0x90})

	regions := []MapRegion{{Start: base, End: base + uint64(len(buf)), Perms: "r-xp"}}
	addr, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "93 BA ?? FB ?? 90"), discardLogger())

	assert.True(t, found)
	assert.Equal(t, uint64(base+40), addr)
}

func TestFindSignatureAbsent(t *testing.T) {
	const base = 0x2000
	buf := make([]byte, 512)

	regions := []MapRegion{{Start: base, End: base + uint64(len(buf)), Perms: "r--p"}}
	_, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "00 00 D3 AD BE EF 99 59 00"), discardLogger())

	assert.False(t, found)
}

func TestFindSignatureSpansContiguousRegions(t *testing.T) {
	const base = 0x8000
	buf := make([]byte, 200)
	// straddles the boundary between [base, base+100) and [base+100, base+200)
	copy(buf[97:], []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02})

	regions := []MapRegion{
		{Start: base, End: base + 100, Perms: "r--p"},
		{Start: base + 100, End: base + 200, Perms: "r--p"},
	}
	addr, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "DE AD BE EF 01 02"), discardLogger())

	assert.True(t, found)
	assert.Equal(t, uint64(base+97), addr)
}

func TestFindSignatureDoesNotSpanGap(t *testing.T) {
	const base = 0x8000
	buf := make([]byte, 200)
	copy(buf[97:], []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02})

	// same bytes, but the second region no longer starts where the first ends
	regions := []MapRegion{
		{Start: base, End: base + 100, Perms: "r--p"},
		{Start: base + 120, End: base + 200, Perms: "r--p"},
	}
	_, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "DE AD BE EF 01 02"), discardLogger())

	assert.False(t, found)
}

func TestFindSignatureSkipsUnreadablePerms(t *testing.T) {
	const base = 0x8000
	buf := make([]byte, 100)
	copy(buf[10:], []byte{0xde, 0xad, 0xbe, 0xef})

	regions := []MapRegion{{Start: base, End: base + uint64(len(buf)), Perms: "---p"}}
	_, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "DE AD BE EF"), discardLogger())

	assert.False(t, found)
}

func TestFindSignatureRecoversFromReadFault(t *testing.T) {
	const base = 0x8000
	buf := make([]byte, 300)
	copy(buf[210:], []byte{0xde, 0xad, 0xbe, 0xef})

	regions := []MapRegion{
		{Start: base, End: base + 100, Perms: "r--p"},
		{Start: base + 100, End: base + 200, Perms: "r--p"},
		{Start: base + 200, End: base + 300, Perms: "r--p"},
	}
	reader := &faultyReader{
		offsetReader: offsetReader{data: buf, base: base},
		failFrom:     base + 100,
		failTo:       base + 200,
	}
	addr, found := findSignature(reader, regions, mustParse(t, "DE AD BE EF"), discardLogger())

	assert.True(t, found)
	assert.Equal(t, uint64(base+210), addr)
}

func TestFindSignatureCrossesChunkBoundary(t *testing.T) {
	const base = 0x100000
	buf := make([]byte, 2*sigChunkSize)
	offset := sigChunkSize - 3
	copy(buf[offset:], []byte{0xde, 0xad, 0xbe, 0xef, 0x55, 0x66})

	regions := []MapRegion{{Start: base, End: base + uint64(len(buf)), Perms: "r--p"}}
	addr, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "DE AD BE EF 55 66"), discardLogger())

	assert.True(t, found)
	assert.Equal(t, uint64(base+offset), addr)
}

func TestFindSignatureFirstMatchWins(t *testing.T) {
	const base = 0x3000
	buf := make([]byte, 256)
	copy(buf[30:], []byte{0xca, 0xfe})
	copy(buf[90:], []byte{0xca, 0xfe})

	regions := []MapRegion{{Start: base, End: base + uint64(len(buf)), Perms: "r--p"}}
	addr, found := findSignature(&offsetReader{data: buf, base: base}, regions, mustParse(t, "CA FE"), discardLogger())

	assert.True(t, found)
	assert.Equal(t, uint64(base+30), addr)
}

func TestParseMaps(t *testing.T) {
	input := "55d000-55e000 r-xp 00000000 08:01 1234 /usr/bin/thing\n" +
		"7f0000000000-7f0000001000 rw-p 00000000 00:00 0\n" +
		"7ffc0000-7ffd0000 ---p 00000000 00:00 0 [stack]\n"

	regions, err := parseMaps(bytes.NewReader([]byte(input)))
	assert.NoError(t, err)
	assert.Equal(t, []MapRegion{
		{Start: 0x55d000, End: 0x55e000, Perms: "r-xp"},
		{Start: 0x7f0000000000, End: 0x7f0000001000, Perms: "rw-p"},
		{Start: 0x7ffc0000, End: 0x7ffd0000, Perms: "---p"},
	}, regions)

	assert.True(t, regions[0].Readable())
	assert.True(t, regions[1].Readable())
	assert.False(t, regions[2].Readable())
}

func TestParseMapsMalformed(t *testing.T) {
	_, err := parseMaps(bytes.NewReader([]byte("nonsense r--p\n")))
	assert.Error(t, err)
}

// offsetReader serves a byte slice at absolute addresses starting at base,
// the way /proc/<pid>/mem serves the target's address space.
type offsetReader struct {
	data []byte
	base uint64
}

func (r *offsetReader) ReadAt(p []byte, off int64) (int, error) {
	rel := off - int64(r.base)
	if rel < 0 || rel >= int64(len(r.data)) {
		return 0, fmt.Errorf("address %x not mapped", off)
	}
	n := copy(p, r.data[rel:])
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

// faultyReader fails any read touching [failFrom, failTo), simulating a
// mapped region that cannot actually be read.
type faultyReader struct {
	offsetReader
	failFrom uint64
	failTo   uint64
}

func (r *faultyReader) ReadAt(p []byte, off int64) (int, error) {
	start := uint64(off)
	end := start + uint64(len(p))
	if start < r.failTo && end > r.failFrom {
		return 0, fmt.Errorf("input/output error at %x", off)
	}
	return r.offsetReader.ReadAt(p, off)
}
