package flowtable

import "errors"

// ErrDrainUnderflow indicates a drain step pushed remaining_bytes below
// -1, which spec §7 treats as a fatal numeric inconsistency rather than a
// clamp-and-continue case.
var ErrDrainUnderflow = errors.New("flowtable: drain produced remaining_bytes below -1")

// ErrNegativeDuration indicates a drain was asked to run for a duration
// below the -1e-6 clamp tolerance.
var ErrNegativeDuration = errors.New("flowtable: drain duration below tolerance")

// ErrUnknownFlow indicates an operation referenced a fid absent from the
// table.
var ErrUnknownFlow = errors.New("flowtable: unknown flow")
