package lifecycle

import "dedrv-go/errcode"

// Policy selects how a pass reacts to a failing device hook.
type Policy uint8

const (
	// AbortAll stops the whole pass at the first hook failure. Devices after
	// the failing one are not attempted. This is the default: boot should not
	// proceed on half-initialized hardware unless explicitly opted out.
	AbortAll Policy = iota

	// Continue records each failure and keeps going; the pass returns an
	// aggregate naming every failed device.
	Continue
)

func (p Policy) String() string {
	switch p {
	case AbortAll:
		return "abort-all"
	case Continue:
		return "continue"
	}
	return "unknown"
}

// ParsePolicy maps the recognized configuration strings to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "abort-all":
		return AbortAll, nil
	case "continue":
		return Continue, nil
	}
	return AbortAll, &errcode.E{C: errcode.InvalidPolicy, Msg: s}
}
