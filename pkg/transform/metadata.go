package transform

import (
	"encoding/binary"
	"io"
	"os"
)

// JPEG markers used below
const (
	markerPrefix = 0xFF
	markerAPP1   = 0xE1
	markerSOS    = 0xDA
)

var soi = []byte{0xFF, 0xD8}

// readEXIFSegment returns the complete APP1 EXIF segment (marker, length
// and payload) from a JPEG file, or nil if the file is not a JPEG or has
// no EXIF data. Only the segment framing is parsed; the TIFF payload is
// carried through untouched.
func readEXIFSegment(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var head [2]byte
	if _, err := io.ReadFull(f, head[:]); err != nil || head[0] != soi[0] || head[1] != soi[1] {
		return nil
	}

	for {
		var marker [2]byte
		if _, err := io.ReadFull(f, marker[:]); err != nil || marker[0] != markerPrefix {
			return nil
		}
		for marker[1] == markerPrefix {
			if _, err := io.ReadFull(f, marker[1:]); err != nil {
				return nil
			}
		}
		if marker[1] == markerSOS {
			// image data starts here, no metadata follows
			return nil
		}

		var lenBuf [2]byte
		if _, err := io.ReadFull(f, lenBuf[:]); err != nil {
			return nil
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf[:])) - 2
		if segLen < 0 {
			return nil
		}

		if marker[1] == markerAPP1 {
			payload := make([]byte, segLen)
			if _, err := io.ReadFull(f, payload); err != nil {
				return nil
			}
			if len(payload) < 6 || string(payload[:4]) != "Exif" || payload[4] != 0 || payload[5] != 0 {
				return nil
			}
			segment := make([]byte, 0, 4+segLen)
			segment = append(segment, marker[0], marker[1], lenBuf[0], lenBuf[1])
			return append(segment, payload...)
		}

		if _, err := f.Seek(int64(segLen), io.SeekCurrent); err != nil {
			return nil
		}
	}
}

// injectEXIFSegment inserts an APP1 segment directly after the SOI marker
// of freshly encoded JPEG data. The data is returned unchanged when it is
// not a JPEG stream.
func injectEXIFSegment(data, segment []byte) []byte {
	if len(data) < 2 || data[0] != soi[0] || data[1] != soi[1] {
		return data
	}
	out := make([]byte, 0, len(data)+len(segment))
	out = append(out, data[:2]...)
	out = append(out, segment...)
	return append(out, data[2:]...)
}
