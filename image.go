package qcatail

import (
	"bytes"
	"fmt"
)

// Legacy uImage format constants
const (
	ImageMagic = 0x27051956
	HeaderSize = 64
	NameSize   = 32
)

// Trailer format constants
const (
	ProductIDSize = 12
	HwVersions    = 5
	TrailerSize   = 2 + 2 + ProductIDSize + 2 + 2 + 1 + 1 + HwVersions*2
)

// The trailer is stored in place of the image name, so both must match.
var _ [NameSize - TrailerSize]struct{}
var _ [TrailerSize - NameSize]struct{}

// Header field offsets
const (
	offMagic     = 0
	offHeaderCRC = 4
	offTime      = 8
	offDataSize  = 12
	offLoadAddr  = 16
	offEntry     = 20
	offDataCRC   = 24
	offOS        = 28
	offArch      = 29
	offType      = 30
	offComp      = 31
	offName      = 32
)

// Trailer field offsets, relative to the start of the name field
const (
	offKernel    = 0
	offFS        = 2
	offProductID = 4
	offSerial    = 16
	offExtra     = 18
	offPKey      = 20
	offKey       = 21
	offHwVersion = 22
)

// VersionPair is a dotted version component stored as two bytes.
type VersionPair struct {
	Major uint8
	Minor uint8
}

func (v VersionPair) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Trailer is the ASUS vendor metadata stored in the image name field.
// The zero value has every field cleared.
type Trailer struct {
	Kernel VersionPair
	FS     VersionPair

	// Product identifier, NUL padded. Only the first 11 bytes are ever
	// taken from the original image name.
	ProductID [ProductIDSize]byte

	SerialNumber uint16
	ExtraNumber  uint16

	// Reserved
	PKey uint8
	// Checksum byte derived from two image samples
	Key uint8

	// Reserved
	HardwareVersions [HwVersions]VersionPair
}

// Product returns the product identifier without NUL padding.
func (t *Trailer) Product() string {
	return cString(t.ProductID[:])
}

// Version returns the trailer version in the same six-component form
// accepted by ParseVersion.
func (t *Trailer) Version() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d.%d",
		t.Kernel.Major, t.Kernel.Minor, t.FS.Major, t.FS.Minor,
		t.SerialNumber, t.ExtraNumber)
}

// Header is the decoded legacy uImage header.
type Header struct {
	Magic uint32
	// CRC-32 of the header with this field zeroed
	HeaderCRC uint32
	// Creation timestamp
	Time uint32
	// Size of the payload following the header
	DataSize   uint32
	LoadAddr   uint32
	EntryPoint uint32
	// Payload checksum, never touched by the patcher
	DataCRC uint32

	OS   uint8
	Arch uint8
	Type uint8
	Comp uint8

	// Image name, or the Trailer once patched
	NameBytes [NameSize]byte
}

// Name returns the image name without NUL padding.
func (h *Header) Name() string {
	return cString(h.NameBytes[:])
}

func (h *Header) String() string {
	return fmt.Sprintf("uImage name=%q size=%d load=0x%08x entry=0x%08x os=%d arch=%d type=%d comp=%d hcrc=0x%08x dcrc=0x%08x",
		h.Name(), h.DataSize, h.LoadAddr, h.EntryPoint, h.OS, h.Arch, h.Type, h.Comp, h.HeaderCRC, h.DataCRC)
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}
