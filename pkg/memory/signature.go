package memory

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// signature scans read memory in chunks of this many bytes to amortize
// syscalls on the memory handle
const sigChunkSize = 0x10000

// SigByte is one element of a signature: either a concrete byte or a
// wildcard matching any single byte.
type SigByte struct {
	Value    byte
	Wildcard bool
}

// Signature is a parsed PEID-style pattern: whitespace-separated tokens,
// each two hex digits or "??" for exactly one arbitrary byte. Example:
// "5A ?? 90 9E".
type Signature []SigByte

// ParseSignature parses a PEID-style pattern string.
func ParseSignature(pattern string) (Signature, error) {
	tokens := strings.Fields(pattern)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty signature pattern")
	}

	sig := make(Signature, 0, len(tokens))
	for _, token := range tokens {
		if token == "??" {
			sig = append(sig, SigByte{Wildcard: true})
			continue
		}
		if len(token) != 2 {
			return nil, fmt.Errorf("bad signature token %q: want two hex digits or ??", token)
		}
		value, err := strconv.ParseUint(token, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("bad signature token %q: %w", token, err)
		}
		sig = append(sig, SigByte{Value: byte(value)})
	}

	return sig, nil
}

func (s Signature) matchesAt(sigpos int, val byte) bool {
	return s[sigpos].Wildcard || s[sigpos].Value == val
}

func abbreviate(sig Signature) string {
	if len(sig) <= 6 {
		return fmt.Sprintf("%d bytes", len(sig))
	}
	return fmt.Sprintf("%d bytes (first %02X %02X %02X...)", len(sig), sig[0].Value, sig[1].Value, sig[2].Value)
}

// findSignature scans the readable regions for sig, reading through r at
// absolute addresses, and returns the start of the first match it completes.
// On a mismatch the match position drops back to 0 and the scan goes on with
// the next byte, so an occurrence that begins inside a failed partial match
// is not found. The match position is
// carried across regions that are exactly contiguous, so a signature may
// straddle a region boundary; anywhere else it resets. A region that fails
// to read partway (which happens even with the r flag set) is logged and
// skipped without aborting the whole search.
func findSignature(r io.ReaderAt, regions []MapRegion, sig Signature, log *logrus.Entry) (uint64, bool) {
	if len(sig) == 0 {
		return 0, false
	}

	sigpos := 0
	var addr uint64

	var chunkStart, chunkEnd uint64
	var chunk []byte

	for _, region := range regions {
		if !region.Readable() {
			continue
		}

		if sigpos > 0 && addr == region.Start {
			// contiguous region, no need to reset the search
			log.Debugf("search bridging across memory section: %x", addr)
		} else {
			sigpos = 0
		}

		addr = region.Start

		for addr < region.End {
			if addr >= chunkEnd || addr < chunkStart {
				size := region.End - addr
				if size > sigChunkSize {
					size = sigChunkSize
				}
				buf := make([]byte, size)
				if _, err := r.ReadAt(buf, int64(addr)); err != nil {
					// may happen on some memory regions even with +r perms,
					// keep searching in the next mapped regions
					log.Infof("can't read memory at %x in section %s", addr, region)
					sigpos = 0
					break
				}
				chunkStart, chunkEnd, chunk = addr, addr+size, buf
			}

			val := chunk[addr-chunkStart]
			if sig.matchesAt(sigpos, val) {
				sigpos++
			} else {
				sigpos = 0
			}
			addr++

			if sigpos == len(sig) {
				return addr - uint64(len(sig)), true
			}
		}
	}

	log.Infof("signature %s not found", abbreviate(sig))
	return 0, false
}
