// Package iccprofile reads the fixed 128-byte header of ICC colour profiles.
package iccprofile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	headerSize     = 128
	maxProfileSize = 4 * 1024 * 1024
	acspMagic      = 0x61637370 // 'acsp'
)

// Info contains metadata parsed from an ICC profile header.
type Info struct {
	Size       uint32
	Version    string
	ColorSpace string // "RGB ", "CMYK", "GRAY", ...
	PCS        string // "XYZ " or "Lab "
	Class      string // "mntr", "prtr", "scnr", ...
}

// Parse reads header metadata from raw profile bytes.
func Parse(data []byte) (*Info, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("ICC profile too short (%d bytes, need %d)", len(data), headerSize)
	}
	if len(data) > maxProfileSize {
		return nil, fmt.Errorf("ICC profile too large (%d bytes, max %d)", len(data), maxProfileSize)
	}
	if sig := binary.BigEndian.Uint32(data[36:40]); sig != acspMagic {
		return nil, fmt.Errorf("invalid ICC signature: 0x%08x (expected 0x%08x)", sig, acspMagic)
	}
	size := binary.BigEndian.Uint32(data[0:4])
	if int(size) > len(data) {
		return nil, errors.New("ICC profile truncated")
	}

	return &Info{
		Size:       size,
		Version:    fmt.Sprintf("%d.%d.%d", data[8], data[9]>>4, data[9]&0x0f),
		ColorSpace: string(data[16:20]),
		PCS:        string(data[20:24]),
		Class:      string(data[12:16]),
	}, nil
}

// ColorSpaceName returns a human-readable name for a colour space signature.
func ColorSpaceName(sig string) string {
	switch sig {
	case "RGB ":
		return "RGB"
	case "CMYK":
		return "CMYK"
	case "GRAY":
		return "Grayscale"
	case "Lab ":
		return "CIELAB"
	case "XYZ ":
		return "CIEXYZ"
	default:
		return sig
	}
}

// ClassName returns a human-readable name for a profile class signature.
func ClassName(sig string) string {
	switch sig {
	case "mntr":
		return "Display"
	case "prtr":
		return "Output"
	case "scnr":
		return "Input"
	case "link":
		return "DeviceLink"
	case "spac":
		return "ColorSpace"
	case "abst":
		return "Abstract"
	case "nmcl":
		return "NamedColor"
	default:
		return sig
	}
}
