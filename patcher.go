package qcatail

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/snksoft/crc"
)

// PatchKey derives the trailer key byte from the two image samples.
// The result equals a - b - 1 modulo 256.
func PatchKey(a, b byte) byte {
	return a + ^b
}

// SampleOffset returns the offset of the second checksum sample: halfway
// through the header and the declared payload.
func SampleOffset(dataSize uint32) uint64 {
	return (uint64(dataSize) + HeaderSize) >> 1
}

// HeaderChecksum computes the CRC-32 of the first HeaderSize bytes of buf
// as if the header CRC field were zero. buf is not modified.
func HeaderChecksum(buf []byte) uint32 {
	var hdr [HeaderSize]byte
	copy(hdr[:], buf[:HeaderSize])
	binary.BigEndian.PutUint32(hdr[offHeaderCRC:], 0)

	h := crc.NewHash(crc.CRC32)
	h.Update(hdr[:])
	return h.CRC32()
}

// VerifyHeader checks the stored header CRC against the header contents.
func VerifyHeader(buf []byte) error {
	if len(buf) < HeaderSize {
		return eMsg(fmt.Errorf("%w (%d < %d bytes)", ErrTooSmall, len(buf), HeaderSize), "verifying header")
	}

	stored := binary.BigEndian.Uint32(buf[offHeaderCRC:])
	calc := HeaderChecksum(buf)
	if stored != calc {
		return eMsg(fmt.Errorf("%w: stored 0x%08x, calculated 0x%08x", ErrHeaderCRC, stored, calc), "verifying header")
	}

	return nil
}

// PayloadDigest returns an xxhash64 digest of everything after the header.
func PayloadDigest(image []byte) uint64 {
	if len(image) <= HeaderSize {
		return xxhash.Sum64(nil)
	}

	return xxhash.Sum64(image[HeaderSize:])
}

// FixChecksum stores the trailer into the image header and recalculates the
// header CRC. t.Key and t.ProductID are filled in from the image; the other
// trailer fields are written as given. The image is modified in place and
// left untouched on error; the only error is ErrImageTooSmall.
func FixChecksum(image []byte, t *Trailer) error {
	if len(image) < HeaderSize {
		return eMsg(fmt.Errorf("%w: image is %d bytes, header needs %d", ErrImageTooSmall, len(image), HeaderSize), "reading header")
	}

	hdr, err := ReadHeader(image)
	if err != nil {
		return err
	}

	sampleOffset := SampleOffset(hdr.DataSize)
	if uint64(len(image)) <= sampleOffset {
		return eMsg(fmt.Errorf("%w: sample offset %d, image is %d bytes", ErrImageTooSmall, sampleOffset, len(image)), "locating checksum sample")
	}

	checksumA := image[0]
	checksumB := image[sampleOffset]
	t.Key = PatchKey(checksumA, checksumB)

	// Keep the leading part of the existing image name
	copy(t.ProductID[:ProductIDSize-1], hdr.NameBytes[:ProductIDSize-1])

	WriteTrailer(image, t)

	binary.BigEndian.PutUint32(image[offHeaderCRC:], 0)
	binary.BigEndian.PutUint32(image[offHeaderCRC:], HeaderChecksum(image))

	return nil
}
