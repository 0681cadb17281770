package ffxii

import (
	"encoding/binary"
	"fmt"
	"io"
	"testing"

	"github.com/s-hammon/lazyrng/pkg/mt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return logrus.NewEntry(log)
}

// fakeMemory serves a flat buffer at absolute addresses starting at base and
// reports the signature wherever the test planted it.
type fakeMemory struct {
	base    uint64
	data    []byte
	sigAddr uint64
	sigHit  bool
	sigErr  error
}

func (m *fakeMemory) FindSignature(pattern string) (uint64, bool, error) {
	return m.sigAddr, m.sigHit, m.sigErr
}

func (m *fakeMemory) Read(addr uint64, count int) ([]byte, error) {
	rel := int64(addr) - int64(m.base)
	if rel < 0 || rel+int64(count) > int64(len(m.data)) {
		return nil, fmt.Errorf("address %x not mapped", addr)
	}
	buf := make([]byte, count)
	copy(buf, m.data[rel:])
	return buf, nil
}

func (m *fakeMemory) ReadU32(addr uint64) (uint32, error) {
	buf, err := m.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func TestFindMtAddresses(t *testing.T) {
	const base = 0x140000000
	const sigOffset = 0x200

	buf := make([]byte, 0x1000)
	// a positive RIP-relative displacement: the mti cell is 0x500 bytes
	// after the end of the 4-byte operand field
	binary.LittleEndian.PutUint32(buf[sigOffset+2:], 0x500)

	mem := &fakeMemory{base: base, data: buf, sigAddr: base + sigOffset, sigHit: true}

	addrs, found, err := FindMtAddresses(mem, "8B 15 ?? ?? ?? ??", discardLogger())
	assert.NoError(t, err)
	assert.True(t, found)

	expectedMti := uint64(base + sigOffset + 2 + 0x500 + 4)
	assert.Equal(t, expectedMti, addrs.MtiAddr)
	assert.Equal(t, expectedMti-4*mt.N, addrs.MtAddr)

	// the state array always ends right where the index cell begins
	assert.Equal(t, addrs.MtiAddr, addrs.MtAddr+4*mt.N)
}

func TestFindMtAddressesNegativeDisplacement(t *testing.T) {
	const base = 0x140001000
	const sigOffset = 0x800

	buf := make([]byte, 0x1000)
	// the mti cell sits 0x400 bytes before the operand end
	binary.LittleEndian.PutUint32(buf[sigOffset+2:], uint32(0xfffffc00)) // -0x400

	mem := &fakeMemory{base: base, data: buf, sigAddr: base + sigOffset, sigHit: true}

	addrs, found, err := FindMtAddresses(mem, "8B 15 ?? ?? ?? ??", discardLogger())
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(base+sigOffset+2+4-0x400), addrs.MtiAddr)
}

func TestFindMtAddressesMiss(t *testing.T) {
	mem := &fakeMemory{}

	_, found, err := FindMtAddresses(mem, "8B 15", discardLogger())
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestFindMtAddressesSearchError(t *testing.T) {
	mem := &fakeMemory{sigErr: fmt.Errorf("input/output error")}

	_, _, err := FindMtAddresses(mem, "8B 15", discardLogger())
	assert.Error(t, err)
}

func encodeMtData(state *mt.State, rawMti uint32) []byte {
	buf := make([]byte, mtNumBytes)
	for i, word := range state {
		binary.LittleEndian.PutUint32(buf[i*4:], word)
	}
	binary.LittleEndian.PutUint32(buf[mt.N*4:], rawMti)
	return buf
}

func TestReadMtData(t *testing.T) {
	const base = 0x7f0000000000

	state := mt.SeedState(5489)
	mem := &fakeMemory{base: base, data: encodeMtData(state, 17)}

	data, err := ReadMtData(mem, base, discardLogger())
	assert.NoError(t, err)
	assert.Equal(t, *state, data.State)
	assert.Equal(t, 17, data.Mti)
	assert.True(t, data.Valid())
}

func TestReadMtDataNormalizesBoundary(t *testing.T) {
	const base = 0x7f0000000000

	state := mt.SeedState(1)
	mem := &fakeMemory{base: base, data: encodeMtData(state, mt.N)}

	data, err := ReadMtData(mem, base, discardLogger())
	assert.NoError(t, err)
	assert.Equal(t, 0, data.Mti)
	assert.True(t, data.Valid())
}

func TestReadMtDataFlagsGarbageIndex(t *testing.T) {
	const base = 0x7f0000000000

	state := mt.SeedState(1)
	mem := &fakeMemory{base: base, data: encodeMtData(state, 99999)}

	data, err := ReadMtData(mem, base, discardLogger())
	assert.NoError(t, err)
	assert.False(t, data.Valid())
}

func TestReadMtDataShortRegion(t *testing.T) {
	mem := &fakeMemory{base: 0x1000, data: make([]byte, 100)}

	_, err := ReadMtData(mem, 0x1000, discardLogger())
	assert.Error(t, err)
}
