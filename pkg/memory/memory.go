// Package memory gives read access to another process's address space via
// /proc/<pid>/mem and knows how to find byte signatures inside it.
package memory

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// MapRegion is one mapped range in the target's address space, as listed in
// /proc/<pid>/maps.
type MapRegion struct {
	Start uint64
	End   uint64
	Perms string
}

// Readable reports whether the region can be read at all.
func (r MapRegion) Readable() bool {
	return strings.Contains(r.Perms, "r")
}

func (r MapRegion) String() string {
	return fmt.Sprintf("%x-%x perms: %s", r.Start, r.End, r.Perms)
}

// ProcessMemory wraps the resources needed to read a process's memory and
// handles acquisition and cleanup. It owns the open handle; Close must be
// called on every exit path.
type ProcessMemory struct {
	Pid int
	Log *logrus.Entry

	mem     *os.File
	regions []MapRegion
}

// Open acquires a read handle on the process's memory. Opening fails with a
// permission error when we aren't privileged to read the target, and with a
// not-exist error when the process is gone.
func Open(pid int, log *logrus.Entry) (*ProcessMemory, error) {
	memfile := fmt.Sprintf("/proc/%d/mem", pid)
	log.Debugf("opening memory file at %s", memfile)

	mem, err := os.Open(memfile)
	if err != nil {
		return nil, err
	}

	return &ProcessMemory{Pid: pid, Log: log, mem: mem}, nil
}

// Close releases the memory handle.
func (p *ProcessMemory) Close() error {
	p.Log.Debugf("closing memory file for pid %d", p.Pid)
	return p.mem.Close()
}

// Regions returns a copy of the process's mapped regions. The list is read
// once and cached; the snapshot is treated as immutable.
func (p *ProcessMemory) Regions() ([]MapRegion, error) {
	if p.regions == nil {
		file, err := os.Open(fmt.Sprintf("/proc/%d/maps", p.Pid))
		if err != nil {
			return nil, err
		}
		defer file.Close()

		regions, err := parseMaps(file)
		if err != nil {
			return nil, err
		}
		p.regions = regions
	}

	snapshot := make([]MapRegion, len(p.regions))
	copy(snapshot, p.regions)
	return snapshot, nil
}

// Read returns exactly count bytes starting at addr, or an error when the
// region is unreadable or the read comes up short.
func (p *ProcessMemory) Read(addr uint64, count int) ([]byte, error) {
	buf := make([]byte, count)
	if _, err := p.mem.ReadAt(buf, int64(addr)); err != nil {
		return nil, fmt.Errorf("reading %d bytes at %x: %w", count, addr, err)
	}
	return buf, nil
}

// ReadU32 interprets the 4 bytes at addr as a little-endian unsigned 32-bit
// integer.
func (p *ProcessMemory) ReadU32(addr uint64) (uint32, error) {
	buf, err := p.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// FindSignature scans the mapped memory for a PEID-style pattern and returns
// the address of the first match.
func (p *ProcessMemory) FindSignature(pattern string) (uint64, bool, error) {
	sig, err := ParseSignature(pattern)
	if err != nil {
		return 0, false, err
	}

	regions, err := p.Regions()
	if err != nil {
		return 0, false, err
	}

	addr, found := findSignature(p.mem, regions, sig, p.Log)
	return addr, found, nil
}

// parseMaps decodes the text format of /proc/<pid>/maps. Only the address
// range and the permission flags are consumed.
func parseMaps(r io.Reader) ([]MapRegion, error) {
	regions := []MapRegion{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		addrs := strings.SplitN(fields[0], "-", 2)
		if len(addrs) != 2 {
			return nil, fmt.Errorf("malformed maps range %q", fields[0])
		}
		start, err := strconv.ParseUint(addrs[0], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed maps address %q: %w", addrs[0], err)
		}
		end, err := strconv.ParseUint(addrs[1], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed maps address %q: %w", addrs[1], err)
		}

		regions = append(regions, MapRegion{Start: start, End: end, Perms: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return regions, nil
}
