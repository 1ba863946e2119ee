// Package wad decodes Doom-format level archives.
//
// An archive is a 12-byte header, a sequence of lump blobs and a directory of
// 16-byte entries naming each lump. The decoder keeps the whole file in memory
// and bounds-checks every read against it; nothing is read past a declared
// lump length.
package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	HeaderSize   = 12
	DirEntrySize = 16
	NameSize     = 8
)

// Magic values accepted in the header signature
const (
	MagicIWAD = "IWAD"
	MagicPWAD = "PWAD"
)

// Lump is one directory entry
type Lump struct {
	Name   string
	Offset int
	Size   int
}

// Archive is a decoded directory over the raw archive bytes
type Archive struct {
	Magic string
	Lumps []Lump

	data []byte
}

// Open reads and decodes the archive at path
func Open(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Kind: "archive", Name: path, Err: err}
		}
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses the header and directory of an in-memory archive
func Decode(data []byte) (*Archive, error) {
	if len(data) < HeaderSize {
		return nil, truncated("header", 0, HeaderSize, len(data))
	}

	magic := string(data[0:4])
	if magic != MagicIWAD && magic != MagicPWAD {
		return nil, &FormatError{What: "header", Offset: 0, Reason: fmt.Sprintf("bad magic %q", magic)}
	}

	count := uint64(binary.LittleEndian.Uint32(data[4:8]))
	dirOffset := uint64(binary.LittleEndian.Uint32(data[8:12]))

	end := dirOffset + count*DirEntrySize
	if end > uint64(len(data)) {
		have := 0
		if dirOffset < uint64(len(data)) {
			have = len(data) - int(dirOffset)
		}
		return nil, truncated("directory", int(dirOffset), int(count*DirEntrySize), have)
	}

	lumps := make([]Lump, count)
	for i := range lumps {
		entry := data[int(dirOffset)+i*DirEntrySize:]
		lumps[i] = Lump{
			Offset: int(binary.LittleEndian.Uint32(entry[0:4])),
			Size:   int(binary.LittleEndian.Uint32(entry[4:8])),
			Name:   decodeName(entry[8:16]),
		}
	}

	return &Archive{Magic: magic, Lumps: lumps, data: data}, nil
}

// decodeName strips zero padding and normalizes case
func decodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.ToUpper(string(b))
}

// Index returns the directory position of the first lump called name, or -1
func (a *Archive) Index(name string) int {
	name = strings.ToUpper(name)
	for i, l := range a.Lumps {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the first lump called name
func (a *Archive) Lookup(name string) (Lump, bool) {
	i := a.Index(name)
	if i < 0 {
		return Lump{}, false
	}
	return a.Lumps[i], true
}

// LumpData returns the bytes of l, failing if the lump extends past the archive
func (a *Archive) LumpData(l Lump) ([]byte, error) {
	if l.Offset < 0 || l.Size < 0 || l.Offset > len(a.data) || l.Size > len(a.data)-l.Offset {
		return nil, truncated("lump "+l.Name, l.Offset, l.Size, max(len(a.data)-l.Offset, 0))
	}
	return a.data[l.Offset : l.Offset+l.Size], nil
}

// ReadLump returns the bytes of the first lump called name
func (a *Archive) ReadLump(name string) ([]byte, error) {
	l, ok := a.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Kind: "lump", Name: strings.ToUpper(name)}
	}
	return a.LumpData(l)
}

// Picture decodes the picture lump called name
func (a *Archive) Picture(name string) (*Picture, error) {
	data, err := a.ReadLump(name)
	if err != nil {
		return nil, err
	}
	pic, err := DecodePicture(data)
	if err != nil {
		return nil, fmt.Errorf("picture %s: %w", name, err)
	}
	return pic, nil
}
