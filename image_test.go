package qcatail

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

// newImage builds an image of size bytes whose header declares dataSize
// bytes of payload. Payload bytes follow a simple counting pattern.
func newImage(size int, dataSize uint32, name string) []byte {
	image := make([]byte, size)
	for i := HeaderSize; i < size; i++ {
		image[i] = byte(i * 7)
	}

	if size < HeaderSize {
		return image
	}

	hdr := Header{
		Magic:      ImageMagic,
		HeaderCRC:  0xdeadbeef,
		Time:       0x60000000,
		DataSize:   dataSize,
		LoadAddr:   0x80208000,
		EntryPoint: 0x80208000,
		DataCRC:    0x12345678,
		OS:         5,
		Arch:       2,
		Type:       2,
		Comp:       0,
	}
	copy(hdr.NameBytes[:], name)
	hdr.Encode(image)

	return image
}

func TestReadHeader(t *testing.T) {
	image := newImage(128, 64, "Linux Kernel Image")

	hdr, err := ReadHeader(image)
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	want := &Header{
		Magic:      ImageMagic,
		HeaderCRC:  0xdeadbeef,
		Time:       0x60000000,
		DataSize:   64,
		LoadAddr:   0x80208000,
		EntryPoint: 0x80208000,
		DataCRC:    0x12345678,
		OS:         5,
		Arch:       2,
		Type:       2,
	}
	copy(want.NameBytes[:], "Linux Kernel Image")

	if !reflect.DeepEqual(hdr, want) {
		t.Errorf("ReadHeader() = %+v, want %+v", hdr, want)
	}
	if got := hdr.Name(); got != "Linux Kernel Image" {
		t.Errorf("Name() = %q", got)
	}
	if binary.BigEndian.Uint32(image[12:]) != 64 {
		t.Errorf("data size not stored big-endian: % x", image[12:16])
	}
}

func TestReadHeaderTooSmall(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"partial", 40},
		{"one short", HeaderSize - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(make([]byte, tt.size))
			if !errors.Is(err, ErrTooSmall) {
				t.Errorf("ReadHeader() error = %v, want ErrTooSmall", err)
			}
		})
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	image := newImage(HeaderSize, 0, "rt-ac58u")
	for i := range image {
		image[i] = byte(i*31 + 3)
	}

	hdr, err := ReadHeader(image)
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	out := make([]byte, HeaderSize)
	if err := hdr.Encode(out); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !bytes.Equal(out, image) {
		t.Errorf("Encode() = % x, want % x", out, image)
	}
}

func TestTrailerLayout(t *testing.T) {
	tail := Trailer{
		Kernel:       VersionPair{3, 0},
		FS:           VersionPair{0, 4},
		SerialNumber: 382,
		ExtraNumber:  52482,
		PKey:         0xaa,
		Key:          0x55,
	}
	copy(tail.ProductID[:], "RT-AC58U")
	for i := range tail.HardwareVersions {
		tail.HardwareVersions[i] = VersionPair{uint8(i + 1), uint8(i + 10)}
	}

	image := newImage(HeaderSize, 0, "")
	WriteTrailer(image, &tail)

	want := []byte{
		3, 0,
		0, 4,
		'R', 'T', '-', 'A', 'C', '5', '8', 'U', 0, 0, 0, 0,
		0x01, 0x7e,
		0xcd, 0x02,
		0xaa,
		0x55,
		1, 10, 2, 11, 3, 12, 4, 13, 5, 14,
	}
	if got := image[32:64]; !bytes.Equal(got, want) {
		t.Errorf("WriteTrailer() = % x, want % x", got, want)
	}

	got, err := ReadTrailer(image)
	if err != nil {
		t.Fatalf("ReadTrailer() error = %v", err)
	}
	if !reflect.DeepEqual(*got, tail) {
		t.Errorf("ReadTrailer() = %+v, want %+v", *got, tail)
	}
	if got.Product() != "RT-AC58U" {
		t.Errorf("Product() = %q", got.Product())
	}
}

func TestWriteTrailerLeavesRestOfHeader(t *testing.T) {
	image := newImage(256, 192, "name")
	orig := append([]byte(nil), image...)

	WriteTrailer(image, &Trailer{Key: 1})

	if !bytes.Equal(image[:32], orig[:32]) {
		t.Errorf("fixed header fields changed")
	}
	if !bytes.Equal(image[HeaderSize:], orig[HeaderSize:]) {
		t.Errorf("payload changed")
	}
}
