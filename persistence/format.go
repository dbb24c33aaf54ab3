package persistence

import "errors"

const (
	// ContainerMagic identifies compressed VecDB snapshot containers (ASCII: "VDBS").
	// Bare snapshots carry no magic; see the package doc for how the two
	// are told apart.
	ContainerMagic = 0x56444253
	// ContainerVersion is the current container format version.
	ContainerVersion = 1

	// MaxDimension caps the dimension accepted from a snapshot header.
	// Anything larger is treated as corruption, not data.
	MaxDimension = 1 << 24
	// MaxIDLength caps a single identifier read from a snapshot.
	MaxIDLength = 1 << 16
)

var (
	// ErrInvalidMagic is returned when a container header carries the wrong magic.
	ErrInvalidMagic = errors.New("invalid container magic")
	// ErrInvalidVersion is returned for container versions this build cannot read.
	ErrInvalidVersion = errors.New("unsupported container version")
	// ErrInvalidCodec is returned for unknown compression codecs.
	ErrInvalidCodec = errors.New("unknown compression codec")
	// ErrCorruptSnapshot is returned when a snapshot fails structural validation.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
