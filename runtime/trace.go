package runtime

import "github.com/dcoretech/dcore/dlog"

// SetTrace toggles per-read debug logging: a cheap, always-compiled
// tracing switch for interactive debugging rather than a dedicated
// tracing framework.
func (rt *Runtime) SetTrace(trace bool) { rt.trace = trace }

func (rt *Runtime) traceRead(structIndex, instanceIndex int32) {
	if rt.trace {
		dlog.L().Debugw("materialise", "structIndex", structIndex, "instanceIndex", instanceIndex)
	}
}

// logCycleBreak always logs, independent of SetTrace: a cycle break is
// locally recovered but always debug-visible, unlike the optional
// per-read trace above.
func (rt *Runtime) logCycleBreak(structIndex, instanceIndex int32) {
	dlog.L().Debugw("cycle break", "structIndex", structIndex, "instanceIndex", instanceIndex)
}

// logUnknownRecord always logs, the same way logCycleBreak does.
func (rt *Runtime) logUnknownRecord(id any) {
	dlog.L().Debugw("unknown record", "guid", id)
}

// logEnumParseMiss always logs, the same way logCycleBreak and
// logUnknownRecord do.
func logEnumParseMiss(enumTypeName, stringID string) {
	dlog.L().Debugw("enum parse miss", "enum", enumTypeName, "stringId", stringID)
}
