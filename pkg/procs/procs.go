// Package procs enumerates live processes through /proc and finds the one we
// want to observe by name.
package procs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ProcessInfo identifies one live process.
type ProcessInfo struct {
	Pid  int
	Name string
}

// Find returns the first process whose short name contains name
// (case-sensitive), or false when there is none.
func Find(name string) (ProcessInfo, bool, error) {
	procs, err := List(name)
	if err != nil {
		return ProcessInfo{}, false, err
	}
	if len(procs) == 0 {
		return ProcessInfo{}, false, nil
	}
	return procs[0], true, nil
}

// List walks the process table and returns every process whose short name
// contains filter. An empty filter returns everything. Processes that vanish
// between enumeration and the status read are skipped.
func List(filter string) ([]ProcessInfo, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}

	procs := []ProcessInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		file, err := os.Open(filepath.Join("/proc", entry.Name(), "status"))
		if err != nil {
			// process has vanished, don't include it
			continue
		}
		name, err := nameFromStatus(file)
		file.Close()
		if err != nil {
			continue
		}

		if strings.Contains(name, filter) {
			procs = append(procs, ProcessInfo{Pid: pid, Name: name})
		}
	}

	return procs, nil
}

// nameFromStatus extracts the short name from a /proc/<pid>/status record.
func nameFromStatus(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Name:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Name:")), nil
		}
	}
	return "", scanner.Err()
}
