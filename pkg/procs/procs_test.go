package procs

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListProcesses(t *testing.T) {
	procs, err := List("")
	assert.NoError(t, err)
	assert.NotEmpty(t, procs)
}

func TestListFindsCurrentProcess(t *testing.T) {
	procs, err := List("")
	assert.NoError(t, err)

	curpid := os.Getpid()
	found := false
	for _, p := range procs {
		if p.Pid == curpid {
			found = true
			assert.NotEmpty(t, p.Name)
		}
	}
	assert.True(t, found, "process table should contain our own pid")
}

func TestFindMissesUnlikelyName(t *testing.T) {
	_, ok, err := Find("there-is-no-process-called-this")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNameFromStatus(t *testing.T) {
	type scenario struct {
		status   string
		expected string
	}

	scenarios := []scenario{
		{
			"Name:\tFFXII_TZA\nUmask:\t0022\nState:\tS (sleeping)\n",
			"FFXII_TZA",
		},
		{
			"Name:\tbash\n",
			"bash",
		},
		{
			"Umask:\t0022\n",
			"",
		},
	}

	for _, s := range scenarios {
		name, err := nameFromStatus(strings.NewReader(s.status))
		assert.NoError(t, err)
		assert.Equal(t, s.expected, name)
	}
}
