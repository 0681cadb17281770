// Package ffxii knows where FFXII The Zodiac Age keeps its MT19937 state and
// runs the worker that keeps a mirror of it in sync.
package ffxii

import (
	"encoding/binary"
	"fmt"

	"github.com/s-hammon/lazyrng/pkg/mt"
	"github.com/sirupsen/logrus"
)

// mtNumBytes covers the 624-word state array plus the index word that
// directly follows it.
const mtNumBytes = (mt.N + 1) * 4

// Memory is the read access the locator needs. *memory.ProcessMemory
// satisfies it.
type Memory interface {
	FindSignature(pattern string) (uint64, bool, error)
	Read(addr uint64, count int) ([]byte, error)
	ReadU32(addr uint64) (uint32, error)
}

// Addresses locates the generator state inside the target.
// MtAddr + 4*624 == MtiAddr always holds.
type Addresses struct {
	MtiAddr uint64
	MtAddr  uint64
}

// FindMtAddresses scans the target's memory for the signature and decodes
// the instruction operand inside it. The signature starts on a
// `mov mti, <imm32>` whose displacement is RIP-relative: the 32-bit operand
// two bytes in is signed and relative to the first byte after it.
func FindMtAddresses(mem Memory, pattern string, log *logrus.Entry) (Addresses, bool, error) {
	sigAddr, found, err := mem.FindSignature(pattern)
	if err != nil {
		return Addresses{}, false, err
	}
	if !found {
		log.Warn("can't find the generator signature in the target")
		return Addresses{}, false, nil
	}

	// the operand of the instruction the sig starts with is after two
	// instruction bytes
	argAddr := sigAddr + 2
	disp, err := mem.ReadU32(argAddr)
	if err != nil {
		return Addresses{}, false, err
	}

	mtiAddr := uint64(int64(argAddr) + int64(int32(disp)) + 4)
	mtAddr := mtiAddr - 4*mt.N

	log.Debugf("signature at: %x, offset: %x, mti_addr: %x, mt_addr: %x",
		sigAddr, disp, mtiAddr, mtAddr)

	return Addresses{MtiAddr: mtiAddr, MtAddr: mtAddr}, true, nil
}

// MtData is one observed snapshot of the generator.
type MtData struct {
	State mt.State
	Mti   int

	rawMti uint32
}

// Valid reports whether the observed index was in range. The boundary value
// 624 is legitimate (it is normalized to 0); anything above it means we are
// reading garbage and should relocate the state.
func (d *MtData) Valid() bool {
	return d.rawMti <= mt.N
}

// ReadMtData reads the full generator snapshot: 624 little-endian state
// words starting at mtAddr followed by the index word. The index is
// normalized modulo 624.
func ReadMtData(mem Memory, mtAddr uint64, log *logrus.Entry) (*MtData, error) {
	buf, err := mem.Read(mtAddr, mtNumBytes)
	if err != nil {
		return nil, fmt.Errorf("reading generator state: %w", err)
	}

	data := &MtData{}
	for i := 0; i < mt.N; i++ {
		data.State[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	data.rawMti = binary.LittleEndian.Uint32(buf[mt.N*4:])
	data.Mti = int(data.rawMti % mt.N)

	if data.rawMti >= mt.N {
		log.Warnf("observed mti %d normalized to %d", data.rawMti, data.Mti)
	}

	return data, nil
}
