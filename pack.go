package qcatail

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Encode writes every header field into the first HeaderSize bytes of buf.
func (h *Header) Encode(buf []byte) error {
	if len(buf) < HeaderSize {
		return eMsg(fmt.Errorf("%w (%d < %d bytes)", ErrTooSmall, len(buf), HeaderSize), "writing header")
	}

	be := binary.BigEndian
	be.PutUint32(buf[offMagic:], h.Magic)
	be.PutUint32(buf[offHeaderCRC:], h.HeaderCRC)
	be.PutUint32(buf[offTime:], h.Time)
	be.PutUint32(buf[offDataSize:], h.DataSize)
	be.PutUint32(buf[offLoadAddr:], h.LoadAddr)
	be.PutUint32(buf[offEntry:], h.EntryPoint)
	be.PutUint32(buf[offDataCRC:], h.DataCRC)

	buf[offOS] = h.OS
	buf[offArch] = h.Arch
	buf[offType] = h.Type
	buf[offComp] = h.Comp
	copy(buf[offName:offName+NameSize], h.NameBytes[:])

	return nil
}

// WriteTrailer overwrites the name field of hdr with the encoded trailer.
// hdr must hold at least HeaderSize bytes.
func WriteTrailer(hdr []byte, t *Trailer) {
	tb := hdr[offName : offName+TrailerSize]
	be := binary.BigEndian

	tb[offKernel] = t.Kernel.Major
	tb[offKernel+1] = t.Kernel.Minor
	tb[offFS] = t.FS.Major
	tb[offFS+1] = t.FS.Minor
	copy(tb[offProductID:offProductID+ProductIDSize], t.ProductID[:])
	be.PutUint16(tb[offSerial:], t.SerialNumber)
	be.PutUint16(tb[offExtra:], t.ExtraNumber)
	tb[offPKey] = t.PKey
	tb[offKey] = t.Key

	for i, hw := range t.HardwareVersions {
		off := offHwVersion + i*2
		tb[off] = hw.Major
		tb[off+1] = hw.Minor
	}
}

// StoreImage writes the whole image to path, replacing any existing file.
func StoreImage(fs afero.Fs, path string, image []byte) (err error) {
	out, err := fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return eMsg(err, "opening output file")
	}
	defer func() {
		cerr := out.Close()
		if err == nil && cerr != nil {
			err = eMsg(cerr, "closing output file")
		}
	}()

	count, err := out.Write(image)
	if err != nil {
		return eMsg(err, "writing output file")
	}
	if count != len(image) {
		return eMsg(io.ErrShortWrite, "writing output file")
	}

	return nil
}
