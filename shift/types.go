package shift

// Kind selects which of the three index-shifting operations to run.
type Kind uint8

const (
	// KindShiftVar adds Delta to every free de Bruijn variable.
	KindShiftVar Kind = iota
	// KindShiftIVar adds Delta to every invention variable.
	KindShiftIVar
	// KindTableShiftIVar adds Table[i] to each IVar(i).
	KindTableShiftIVar
)

// varKey memoizes ShiftVar/ShiftIVar results, keyed on the node, the shift
// amount, and the current binder depth.
type varKey struct {
	kind  Kind
	id    int32
	delta int32
	depth int32
}

// tableKey memoizes TableShiftIVar results, keyed on the node and a
// fingerprint of the remapping table (invention variables are never bound by
// Lam, so no binder depth is needed here).
type tableKey struct {
	id          int32
	tableDigest string
}
