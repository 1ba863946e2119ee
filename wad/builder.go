package wad

import (
	"encoding/binary"
	"io"
)

// Builder assembles an archive in memory: header, lump blobs, then the
// directory. Used for fixtures and generated test levels.
type Builder struct {
	magic   string
	entries []builderEntry
}

type builderEntry struct {
	name string
	data []byte
}

// NewBuilder starts an archive with the given 4-byte magic
func NewBuilder(magic string) *Builder {
	return &Builder{magic: magic}
}

// Add appends a lump
func (b *Builder) Add(name string, data []byte) *Builder {
	b.entries = append(b.entries, builderEntry{name: name, data: data})
	return b
}

// AddMap appends a map marker followed by its four data lumps in canonical order
func (b *Builder) AddMap(m *Map) *Builder {
	return b.Add(m.Name, nil).
		Add("THINGS", EncodeThings(m.Things)).
		Add("LINEDEFS", EncodeLinedefs(m.Linedefs)).
		Add("SIDEDEFS", EncodeSidedefs(m.Sidedefs)).
		Add("VERTEXES", EncodeVertexes(m.Vertexes))
}

// Bytes renders the archive
func (b *Builder) Bytes() []byte {
	size := HeaderSize
	for _, e := range b.entries {
		size += len(e.data)
	}
	dirOffset := size
	size += len(b.entries) * DirEntrySize

	out := make([]byte, size)
	copy(out[0:4], b.magic)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(b.entries)))
	binary.LittleEndian.PutUint32(out[8:], uint32(dirOffset))

	pos := HeaderSize
	for i, e := range b.entries {
		copy(out[pos:], e.data)
		entry := out[dirOffset+i*DirEntrySize:]
		binary.LittleEndian.PutUint32(entry[0:], uint32(pos))
		binary.LittleEndian.PutUint32(entry[4:], uint32(len(e.data)))
		encodeName(entry[8:16], e.name)
		pos += len(e.data)
	}
	return out
}

// WriteTo writes the rendered archive to w
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

func encodeName(dst []byte, name string) {
	n := copy(dst[:NameSize], name)
	for i := n; i < NameSize; i++ {
		dst[i] = 0
	}
}

func putI16(b []byte, v int) { binary.LittleEndian.PutUint16(b, uint16(int16(v))) }

// EncodeVertexes serializes vertexes in archive layout
func EncodeVertexes(vs []Vertex) []byte {
	out := make([]byte, len(vs)*VertexSize)
	for i, v := range vs {
		b := out[i*VertexSize:]
		putI16(b[0:], v.X)
		putI16(b[2:], v.Y)
	}
	return out
}

// EncodeLinedefs serializes linedefs in archive layout
func EncodeLinedefs(ls []Linedef) []byte {
	out := make([]byte, len(ls)*LinedefSize)
	for i, l := range ls {
		b := out[i*LinedefSize:]
		for j, v := range [...]uint16{l.Start, l.End, l.Flags, l.Special, l.Tag, l.Right, l.Left} {
			binary.LittleEndian.PutUint16(b[2*j:], v)
		}
	}
	return out
}

// EncodeSidedefs serializes sidedefs in archive layout
func EncodeSidedefs(ss []Sidedef) []byte {
	out := make([]byte, len(ss)*SidedefSize)
	for i, s := range ss {
		b := out[i*SidedefSize:]
		putI16(b[0:], s.XOffset)
		putI16(b[2:], s.YOffset)
		encodeName(b[4:12], s.Upper)
		encodeName(b[12:20], s.Lower)
		encodeName(b[20:28], s.Middle)
		putI16(b[28:], s.Sector)
	}
	return out
}

// EncodeThings serializes things in archive layout
func EncodeThings(ts []Thing) []byte {
	out := make([]byte, len(ts)*ThingSize)
	for i, t := range ts {
		b := out[i*ThingSize:]
		putI16(b[0:], t.X)
		putI16(b[2:], t.Y)
		putI16(b[4:], t.Angle)
		putI16(b[6:], t.Type)
		putI16(b[8:], t.Flags)
	}
	return out
}

// Post is one vertical run of opaque pixels in a picture column
type Post struct {
	Row    int
	Pixels []byte
}

// EncodePicture serializes a picture from its columns of posts
func EncodePicture(height, left, top int, columns [][]Post) []byte {
	width := len(columns)
	out := make([]byte, PictureHeaderSize+4*width)
	binary.LittleEndian.PutUint16(out[0:], uint16(width))
	binary.LittleEndian.PutUint16(out[2:], uint16(height))
	putI16(out[4:], left)
	putI16(out[6:], top)

	for x, posts := range columns {
		binary.LittleEndian.PutUint32(out[PictureHeaderSize+4*x:], uint32(len(out)))
		for _, p := range posts {
			out = append(out, byte(p.Row), byte(len(p.Pixels)), 0)
			out = append(out, p.Pixels...)
			out = append(out, 0)
		}
		out = append(out, postEnd)
	}
	return out
}
