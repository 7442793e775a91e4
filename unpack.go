package qcatail

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// ReadHeader decodes the legacy uImage header at the start of buf.
// Nothing is validated besides the buffer length.
func ReadHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, eMsg(fmt.Errorf("%w (%d < %d bytes)", ErrTooSmall, len(buf), HeaderSize), "reading header")
	}

	be := binary.BigEndian
	hdr := &Header{
		Magic:      be.Uint32(buf[offMagic:]),
		HeaderCRC:  be.Uint32(buf[offHeaderCRC:]),
		Time:       be.Uint32(buf[offTime:]),
		DataSize:   be.Uint32(buf[offDataSize:]),
		LoadAddr:   be.Uint32(buf[offLoadAddr:]),
		EntryPoint: be.Uint32(buf[offEntry:]),
		DataCRC:    be.Uint32(buf[offDataCRC:]),

		OS:   buf[offOS],
		Arch: buf[offArch],
		Type: buf[offType],
		Comp: buf[offComp],
	}
	copy(hdr.NameBytes[:], buf[offName:offName+NameSize])

	return hdr, nil
}

// ReadTrailer decodes the name field of a patched header as a Trailer.
func ReadTrailer(buf []byte) (*Trailer, error) {
	if len(buf) < HeaderSize {
		return nil, eMsg(fmt.Errorf("%w (%d < %d bytes)", ErrTooSmall, len(buf), HeaderSize), "reading trailer")
	}

	be := binary.BigEndian
	tb := buf[offName : offName+TrailerSize]

	t := &Trailer{
		Kernel:       VersionPair{tb[offKernel], tb[offKernel+1]},
		FS:           VersionPair{tb[offFS], tb[offFS+1]},
		SerialNumber: be.Uint16(tb[offSerial:]),
		ExtraNumber:  be.Uint16(tb[offExtra:]),
		PKey:         tb[offPKey],
		Key:          tb[offKey],
	}
	copy(t.ProductID[:], tb[offProductID:offProductID+ProductIDSize])

	for i := range t.HardwareVersions {
		off := offHwVersion + i*2
		t.HardwareVersions[i] = VersionPair{tb[off], tb[off+1]}
	}

	return t, nil
}

// LoadImage reads a whole image file into memory.
func LoadImage(fs afero.Fs, path string) ([]byte, error) {
	fin, err := fs.Open(path)
	if err != nil {
		return nil, eMsg(err, "opening input file")
	}
	defer fin.Close()

	info, err := fin.Stat()
	if err != nil {
		return nil, eMsg(err, "getting input file size")
	}

	image := make([]byte, info.Size())
	_, err = io.ReadFull(fin, image)
	if err != nil {
		return nil, eMsg(err, "reading input file")
	}

	return image, nil
}
