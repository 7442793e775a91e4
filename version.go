package qcatail

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionComponents is the number of dotted components in a firmware version.
const VersionComponents = 6

// ParseVersion parses a firmware version such as "3.0.0.4.382.52482" into
// the kernel version, filesystem version, serial number and extra number of t.
//
// The first four components must fit in 8 bits, the last two in 16 bits.
// Components are stored in order until the first invalid one, so on error t
// may be partially filled. Fields that were not reached keep their values.
// An out-of-range component stops parsing; it is not truncated to fit.
func ParseVersion(version string, t *Trailer) error {
	parts := strings.Split(version, ".")

	fields := [VersionComponents]struct {
		bits  int
		store func(uint64)
	}{
		{8, func(v uint64) { t.Kernel.Major = uint8(v) }},
		{8, func(v uint64) { t.Kernel.Minor = uint8(v) }},
		{8, func(v uint64) { t.FS.Major = uint8(v) }},
		{8, func(v uint64) { t.FS.Minor = uint8(v) }},
		{16, func(v uint64) { t.SerialNumber = uint16(v) }},
		{16, func(v uint64) { t.ExtraNumber = uint16(v) }},
	}

	for i, f := range fields {
		if i >= len(parts) {
			break
		}

		v, err := strconv.ParseUint(parts[i], 10, f.bits)
		if err != nil {
			return eMsg(fmt.Errorf("%w: component %d of %q: %v", ErrVersionFormat, i+1, version, err), "parsing version")
		}

		f.store(v)
	}

	if len(parts) != VersionComponents {
		return eMsg(fmt.Errorf("%w: %q has %d components", ErrVersionFormat, version, len(parts)), "parsing version")
	}

	return nil
}
