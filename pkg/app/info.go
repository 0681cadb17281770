package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/s-hammon/lazyrng/pkg/ffxii"
	"github.com/s-hammon/lazyrng/pkg/memory"
	"github.com/s-hammon/lazyrng/pkg/procs"
)

// RunInfo locates the generator once and prints what it finds. The operator
// can short-circuit the signature search by passing both addresses as hex.
func (app *App) RunInfo(mtHex, mtiHex string) error {
	pinfo, ok, err := procs.Find(app.Config.UserConfig.Observer.ProcessName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("couldn't find a process matching %q", app.Config.UserConfig.Observer.ProcessName)
	}

	pmem, err := memory.Open(pinfo.Pid, app.Log)
	if err != nil {
		return err
	}
	defer pmem.Close()

	var addrs ffxii.Addresses
	if mtHex != "" && mtiHex != "" {
		mtAddr, err := parseHexAddr(mtHex)
		if err != nil {
			return err
		}
		mtiAddr, err := parseHexAddr(mtiHex)
		if err != nil {
			return err
		}
		addrs = ffxii.Addresses{MtAddr: mtAddr, MtiAddr: mtiAddr}
	} else {
		var found bool
		addrs, found, err = ffxii.FindMtAddresses(pmem, app.Config.UserConfig.Observer.Signature, app.Log)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("can't find the generator addresses in pid %d", pinfo.Pid)
		}
	}

	data, err := ffxii.ReadMtData(pmem, addrs.MtAddr, app.Log)
	if err != nil {
		return err
	}

	fmt.Printf("Process: %s (pid %d)\n", pinfo.Name, pinfo.Pid)
	fmt.Printf("MT address: 0x%x\n", addrs.MtAddr)
	fmt.Printf("MTI address: 0x%x\n", addrs.MtiAddr)
	fmt.Printf("MTI value: %d\n", data.Mti)

	return nil
}

// RunRandom is a reserved diagnostic subcommand.
func (app *App) RunRandom() error {
	app.Log.Info("random subcommand is reserved, doing nothing")
	return nil
}

func parseHexAddr(s string) (uint64, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(s), "0x")
	addr, err := strconv.ParseUint(cleaned, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("bad hex address %q: %w", s, err)
	}
	return addr, nil
}
