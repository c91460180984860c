package lifecycle

import (
	"cmp"
	"slices"

	"dedrv-go/critical"
	"dedrv-go/descriptor"
	"dedrv-go/errcode"
	"dedrv-go/registry"
	"dedrv-go/types"
	"dedrv-go/x/timex"
)

// Options configures a Manager.
type Options struct {
	Policy Policy
}

// Manager drives every registered device through the lifecycle state machine:
// one ordered init pass at boot, one reverse-ordered cleanup pass at
// shutdown.
type Manager struct {
	reg  *registry.Registry
	opts Options

	recs   []descriptor.Descriptor // snapshot in placement order
	states []State
	order  []int // realized init order: priority ascending, placement tie-break

	scanned bool
	scanErr error
}

// New creates a manager over a registry view. Nothing is validated or
// executed until the first pass (or lookup) runs.
func New(reg *registry.Registry, opts Options) *Manager {
	return &Manager{reg: reg, opts: opts}
}

// scan validates the registry, snapshots it, rejects duplicate ids, and
// computes the init order. It runs once; its verdict is cached because both
// faults it can find are permanent properties of the build.
func (m *Manager) scan() error {
	if m.scanned {
		return m.scanErr
	}
	m.scanned = true

	if err := m.reg.Validate(); err != nil {
		m.scanErr = err
		return err
	}

	seen := make(map[string]struct{}, m.reg.Len())
	for d := range m.reg.Entries() {
		if _, dup := seen[d.ID]; dup {
			m.recs = nil
			m.scanErr = &DuplicateIDError{ID: d.ID}
			return m.scanErr
		}
		seen[d.ID] = struct{}{}
		m.recs = append(m.recs, d)
	}

	m.states = make([]State, len(m.recs))
	m.order = make([]int, len(m.recs))
	for i := range m.order {
		m.order[i] = i
	}
	// Stable sort keeps placement order among equal priorities, so the
	// realized order is reproducible for a fixed source.
	slices.SortStableFunc(m.order, func(a, b int) int {
		return cmp.Compare(m.recs[a].Priority, m.recs[b].Priority)
	})
	return nil
}

// Init runs the full initialization pass: ascending priority, placement
// tie-break. Each init hook runs inside a critical section. The returned
// report names every device and its outcome; the error is nil on full
// success, the first InitError under abort-all, or an Errors aggregate under
// continue.
func (m *Manager) Init() (rep types.PassReport, _ error) {
	rep = m.newReport("init")
	defer func() { rep.ElapsedMs = timex.SinceMs(rep.TsMs) }()
	if err := m.scan(); err != nil {
		return rep, err
	}

	var agg Errors
	var abort *InitError
	for _, i := range m.order {
		d := m.recs[i]
		if abort != nil {
			rep.Devices = append(rep.Devices, m.result(i, errcode.Skipped, nil))
			continue
		}
		if m.states[i] != Uninitialized {
			// States only advance within a cycle; a second Init call finds
			// the device already settled and must not re-run the hook.
			code := errcode.OK
			switch m.states[i] {
			case Failed:
				code = errcode.InitFailed
			case Cleaned:
				code = errcode.AlreadyClean
			}
			rep.Devices = append(rep.Devices, m.result(i, code, nil))
			continue
		}

		m.states[i] = Initializing
		var err error
		critical.With(func() { err = d.Init() })
		if err != nil {
			m.states[i] = Failed
			ie := &InitError{ID: d.ID, Err: err}
			rep.Devices = append(rep.Devices, m.result(i, errcode.InitFailed, err))
			if m.opts.Policy == AbortAll {
				abort = ie
				continue
			}
			agg = append(agg, ie)
			continue
		}
		m.states[i] = Ready
		rep.Devices = append(rep.Devices, m.result(i, errcode.OK, nil))
	}

	if abort != nil {
		return rep, abort
	}
	if len(agg) > 0 {
		return rep, agg
	}
	return rep, nil
}

// Cleanup runs the teardown pass in the exact reverse of the realized init
// order (strict LIFO). Cleanup hooks run only for devices whose init
// succeeded; everything else reports already-clean without invoking any
// hook, which makes the pass idempotent.
func (m *Manager) Cleanup() (rep types.PassReport, _ error) {
	rep = m.newReport("cleanup")
	defer func() { rep.ElapsedMs = timex.SinceMs(rep.TsMs) }()
	if err := m.scan(); err != nil {
		return rep, err
	}

	var agg Errors
	var abort *CleanupError
	for k := len(m.order) - 1; k >= 0; k-- {
		i := m.order[k]
		d := m.recs[i]
		if abort != nil {
			rep.Devices = append(rep.Devices, m.result(i, errcode.Skipped, nil))
			continue
		}

		switch m.states[i] {
		case Ready:
			m.states[i] = CleaningUp
			var err error
			critical.With(func() { err = d.Cleanup() })
			if err != nil {
				m.states[i] = Failed
				ce := &CleanupError{ID: d.ID, Err: err}
				rep.Devices = append(rep.Devices, m.result(i, errcode.CleanupFailed, err))
				if m.opts.Policy == AbortAll {
					abort = ce
					continue
				}
				agg = append(agg, ce)
				continue
			}
			m.states[i] = Cleaned
			rep.Devices = append(rep.Devices, m.result(i, errcode.OK, nil))

		case Uninitialized:
			m.states[i] = Cleaned
			rep.Devices = append(rep.Devices, m.result(i, errcode.AlreadyClean, nil))

		default:
			// Failed, Cleaned, or mid-transition: terminal for this cycle.
			rep.Devices = append(rep.Devices, m.result(i, errcode.AlreadyClean, nil))
		}
	}

	if abort != nil {
		return rep, abort
	}
	if len(agg) > 0 {
		return rep, agg
	}
	return rep, nil
}

// Handle is the lookup result: the bound descriptor plus the device's
// current lifecycle state.
type Handle struct {
	Desc  descriptor.Descriptor
	State State
}

// Find resolves a device by id. Absence is a normal outcome, reported via
// ok. Find is safe in any lifecycle phase; if the registry cannot be trusted
// (layout fault, duplicate ids) it falls back to a plain placement scan and
// reports the device as uninitialized.
func (m *Manager) Find(id string) (Handle, bool) {
	if err := m.scan(); err != nil {
		d, ok := m.reg.Find(id)
		if !ok {
			return Handle{}, false
		}
		return Handle{Desc: d, State: Uninitialized}, true
	}
	for i, d := range m.recs {
		if d.ID == id {
			return Handle{Desc: d, State: m.states[i]}, true
		}
	}
	return Handle{}, false
}

// State reports a device's current lifecycle state by id.
func (m *Manager) State(id string) (State, bool) {
	h, ok := m.Find(id)
	return h.State, ok
}

func (m *Manager) newReport(pass string) types.PassReport {
	return types.PassReport{
		Pass:   pass,
		Policy: m.opts.Policy.String(),
		TsMs:   timex.NowMs(),
	}
}

func (m *Manager) result(i int, code errcode.Code, cause error) types.DeviceResult {
	r := types.DeviceResult{
		ID:       m.recs[i].ID,
		Priority: m.recs[i].Priority,
		State:    m.states[i].String(),
		Code:     string(code),
	}
	if cause != nil {
		r.Error = cause.Error()
	}
	return r
}
