package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Metadata holds the LIST/INFO entries a bank file carries.
// See http://bwfmetaedit.sourceforge.net/listinfo.html
type Metadata struct {
	Title        string
	Artist       string
	Comments     string
	Copyright    string
	CreationDate string
	Genre        string
	Keywords     string
	Product      string
	Software     string
}

var (
	markerINAM = [4]byte{'I', 'N', 'A', 'M'}
	markerIART = [4]byte{'I', 'A', 'R', 'T'}
	markerICMT = [4]byte{'I', 'C', 'M', 'T'}
	markerICOP = [4]byte{'I', 'C', 'O', 'P'}
	markerICRD = [4]byte{'I', 'C', 'R', 'D'}
	markerIGNR = [4]byte{'I', 'G', 'N', 'R'}
	markerIKEY = [4]byte{'I', 'K', 'E', 'Y'}
	markerIPRD = [4]byte{'I', 'P', 'R', 'D'}
	markerISFT = [4]byte{'I', 'S', 'F', 'T'}

	errListNilChunk      = errors.New("can't decode a nil chunk")
	errListNilDecoder    = errors.New("nil decoder")
	errListTruncatedInfo = errors.New("truncated INFO entry")
)

type infoField struct {
	marker [4]byte
	value  *string
}

// fields lists the INFO entries in the order they are written.
func (m *Metadata) fields() []infoField {
	return []infoField{
		{markerINAM, &m.Title},
		{markerIART, &m.Artist},
		{markerICMT, &m.Comments},
		{markerICOP, &m.Copyright},
		{markerICRD, &m.CreationDate},
		{markerIGNR, &m.Genre},
		{markerIKEY, &m.Keywords},
		{markerIPRD, &m.Product},
		{markerISFT, &m.Software},
	}
}

// DecodeListChunk decodes a LIST/INFO chunk into d.Metadata.
func DecodeListChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errListNilChunk
	}

	if d == nil {
		return errListNilDecoder
	}

	defer ch.Drain()

	buf, err := io.ReadAll(ch)
	if err != nil {
		return fmt.Errorf("failed to read the LIST chunk - %w", err)
	}

	if len(buf) < 4 || !bytes.Equal(buf[:4], CIDInfo) {
		return nil
	}

	if d.Metadata == nil {
		d.Metadata = &Metadata{}
	}

	fields := d.Metadata.fields()
	reader := bytes.NewReader(buf[4:])

	for reader.Len() >= 8 {
		var (
			id   [4]byte
			size uint32
		)

		if err := binary.Read(reader, binary.BigEndian, &id); err != nil {
			return fmt.Errorf("failed to read sub header ID: %w", err)
		}

		if err := binary.Read(reader, binary.LittleEndian, &size); err != nil {
			return fmt.Errorf("failed to read sub header size: %w", err)
		}

		if int64(size) > int64(reader.Len()) {
			return fmt.Errorf("%w: %s wants %d bytes, %d left", errListTruncatedInfo, id, size, reader.Len())
		}

		value := make([]byte, size)
		if _, err := io.ReadFull(reader, value); err != nil {
			return fmt.Errorf("read sub header %s data: %w", id, err)
		}

		// entries are word aligned
		if size%2 == 1 && reader.Len() > 0 {
			reader.ReadByte()
		}

		for _, field := range fields {
			if field.marker == id {
				*field.value = nullTermStr(value)

				break
			}
		}
	}

	return nil
}

func encodeInfoChunk(m *Metadata) []byte {
	if m == nil {
		return nil
	}

	buf := bytes.NewBuffer(nil)

	for _, field := range m.fields() {
		if *field.value == "" {
			continue
		}

		size := len(*field.value) + 1

		buf.Write(field.marker[:])
		binary.Write(buf, binary.LittleEndian, uint32(size))
		buf.WriteString(*field.value)
		buf.WriteByte(0x00)

		if size%2 == 1 {
			buf.WriteByte(0x00)
		}
	}

	if buf.Len() == 0 {
		return nil
	}

	return append(append([]byte(nil), CIDInfo...), buf.Bytes()...)
}
