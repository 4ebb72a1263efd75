package beam

import "errors"

var (
	// ErrInvalidPartition is returned when segment lengths do not tile the
	// buffer passed to MultiCumsum.
	ErrInvalidPartition = errors.New("invalid partition")

	// ErrInvalidGeometry is returned for non-positive radii, semiangles or
	// point counts.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDegenerateRing marks a ring that was allotted zero points. It is
	// advisory: the ring is skipped and sampling continues.
	ErrDegenerateRing = errors.New("degenerate ring")
)
