package runtime

// EnumParse resolves a string identifier to a typed enum value of type T,
// memoised by (enumTypeName, stringID) in the runtime's shared enum
// cache: duplicate ids within or across arrays of the same enum type
// share a cache entry because the key is exactly this pair. lookup maps
// every known option's string identifier to its generated enum value;
// fallback is always the generated Unknown value for T, supplied by the
// caller (generated code) rather than guessed here. An empty or
// unrecognised stringID yields fallback and is recorded on the debug
// channel — a local recovery, never a Go error.
func EnumParse[T any](rt *Runtime, enumTypeName, stringID string, lookup map[string]T, fallback T) T {
	key := enumTypeName + "\x00" + stringID
	if v, ok := rt.enumCache.Load(key); ok {
		return v.(T)
	}

	val, ok := lookup[stringID]
	if !ok {
		logEnumParseMiss(enumTypeName, stringID)
		val = fallback
	}

	actual, _ := rt.enumCache.LoadOrStore(key, val)
	return actual.(T)
}
