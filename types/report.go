// Package types holds the JSON-serialisable report documents surfaced by the
// lifecycle passes, consumed by host-side tooling (cmd/selftest) and tests.
package types

// PassReport summarises one full init or cleanup pass. Devices appear in the
// order the pass visited (or would have visited) them, so a report of a
// failed abort-all pass still names every device and what happened to it.
type PassReport struct {
	Pass      string         `json:"pass"`   // "init" | "cleanup"
	Policy    string         `json:"policy"` // "abort-all" | "continue"
	Devices   []DeviceResult `json:"devices"`
	TsMs      int64          `json:"ts_ms"`
	ElapsedMs int64          `json:"elapsed_ms"`
}

// DeviceResult is one device's outcome within a pass.
type DeviceResult struct {
	ID       string `json:"id"`
	Priority int32  `json:"priority"`
	State    string `json:"state"`           // lifecycle state after the pass
	Code     string `json:"code"`            // errcode string, e.g. "ok", "init_failed"
	Error    string `json:"error,omitempty"` // underlying cause, if any
}

// Failed reports whether any device in the pass failed.
func (r PassReport) Failed() bool {
	for _, d := range r.Devices {
		if d.Error != "" {
			return true
		}
	}
	return false
}
