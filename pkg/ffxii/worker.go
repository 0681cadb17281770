package ffxii

import (
	"os"
	"time"

	"github.com/s-hammon/lazyrng/pkg/bus"
	"github.com/s-hammon/lazyrng/pkg/config"
	"github.com/s-hammon/lazyrng/pkg/memory"
	"github.com/s-hammon/lazyrng/pkg/mt"
	"github.com/s-hammon/lazyrng/pkg/procs"
	"github.com/sirupsen/logrus"
)

// Worker periodically probes the game's memory to monitor the RNG state and
// emits what it sees onto the bus. It never terminates the program: every
// fault drops it back to an earlier stage of the attach sequence.
type Worker struct {
	Log    *logrus.Entry
	Config config.ObserverConfig
	Bus    *bus.Bus
}

// NewWorker returns a memory worker ready to Run.
func NewWorker(cfg config.ObserverConfig, b *bus.Bus, log *logrus.Entry) *Worker {
	return &Worker{
		Log:    log.WithField("worker", "memory"),
		Config: cfg,
		Bus:    b,
	}
}

// Run drives the attach loop until stop closes: find the process, open its
// memory, locate the generator, then observe it every tick. Fatal attach
// errors restart discovery; the memory handle is released on every exit
// path.
func (w *Worker) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			w.Log.Debug("memory worker: exiting")
			return
		default:
		}

		pinfo, ok, err := procs.Find(w.Config.ProcessName)
		if err != nil {
			w.Log.Errorf("can't list processes: %v", err)
			w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
			w.wait(w.Config.DiscoverInterval, stop)
			continue
		}
		if !ok {
			w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
			w.wait(w.Config.DiscoverInterval, stop)
			continue
		}

		w.Log.Debugf("%s pid: %d", w.Config.ProcessName, pinfo.Pid)
		w.observe(pinfo, stop)
	}
}

// observe owns one attach attempt. It returns when the attach is no longer
// usable (process gone, permission refused, I/O error) or when stop closes.
func (w *Worker) observe(pinfo procs.ProcessInfo, stop <-chan struct{}) {
	pmem, err := memory.Open(pinfo.Pid, w.Log)
	if err != nil {
		w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
		if os.IsPermission(err) {
			w.Log.Errorf("not allowed to read memory of pid %d: %v", pinfo.Pid, err)
			w.wait(w.Config.PermissionBackoff, stop)
			return
		}
		w.Log.Warnf("can't open memory of pid %d: %v", pinfo.Pid, err)
		return
	}
	defer pmem.Close()

	mirror := mt.NewMirror(w.Log)
	var addrs *Addresses

	for {
		select {
		case <-stop:
			return
		default:
		}

		if addrs == nil {
			a, found, err := FindMtAddresses(pmem, w.Config.Signature, w.Log)
			if err != nil {
				w.Log.Warnf("can't search the target's memory: %v", err)
				w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
				return
			}
			if !found {
				w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
				if !w.wait(w.Config.ObserveInterval, stop) {
					return
				}
				continue
			}
			addrs = &a
		}

		data, err := ReadMtData(pmem, addrs.MtAddr, w.Log)
		if err != nil {
			w.Log.Warnf("lost the target while reading state: %v", err)
			w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
			return
		}
		if !data.Valid() {
			w.Log.Warn("observed state is out of range, relocating")
			w.Bus.Emit(bus.OnlineStatus{Online: false}, stop)
			addrs = nil
			continue
		}

		w.tick(mirror, data, stop)

		if !w.wait(w.Config.ObserveInterval, stop) {
			return
		}
	}
}

// tick folds one observed snapshot into the mirror and emits the results.
// The emit order within a tick is fixed: status, then mti, then the
// percentage window. The mti goes out even when the mirror can't sync, so
// the UI always reflects the live cursor.
func (w *Worker) tick(mirror *mt.Mirror, data *MtData, stop <-chan struct{}) {
	observedWord := data.State[data.Mti]

	synced := mirror.HasData() && mirror.Sync(observedWord, data.Mti)
	if !synced {
		if err := mirror.ResetFromState(&data.State, data.Mti); err != nil {
			w.Log.Errorf("can't reset mirror: %v", err)
		}
	}

	online := mirror.HasData()
	w.Bus.Emit(bus.OnlineStatus{Online: online}, stop)
	w.Bus.Emit(bus.MtiValue{Mti: data.Mti}, stop)

	if !online {
		return
	}

	pcs, err := mirror.NextPercentages(w.Config.Lookahead)
	if err != nil {
		w.Log.Errorf("can't project upcoming values: %v", err)
		return
	}
	w.Bus.Emit(bus.NextPercentages{Percentages: pcs}, stop)
}

// wait sleeps for the interval, returning false when stop closed instead.
func (w *Worker) wait(d time.Duration, stop <-chan struct{}) bool {
	select {
	case <-stop:
		return false
	case <-time.After(d):
		return true
	}
}
