package wad

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/dogsinatas29/doomforantigravity/logger"
)

// Record sizes in bytes
const (
	VertexSize  = 4
	LinedefSize = 14
	SidedefSize = 30
	ThingSize   = 10
)

// NoSide marks a linedef without a side surface
const NoSide = 0xFFFF

// PlayerStart is the thing type of the player 1 spawn
const PlayerStart = 1

// mapLumps are the lumps trusted by position after a map marker
var mapLumps = [...]string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES"}

// Vertex is a map coordinate in map units
type Vertex struct {
	X, Y int
}

// Linedef is a directed wall between two vertexes
type Linedef struct {
	Start, End uint16
	Flags      uint16
	Special    uint16
	Tag        uint16
	Right      uint16
	Left       uint16
}

// Sidedef describes the surface materials of one side of a linedef.
// Only Middle is used by the single-height wall model.
type Sidedef struct {
	XOffset, YOffset int
	Upper            string
	Lower            string
	Middle           string
	Sector           int
}

// Thing is a spawn record
type Thing struct {
	X, Y  int
	Angle int // degrees
	Type  int
	Flags int
}

// Radians returns the facing angle
func (t Thing) Radians() float64 {
	return degreesToRadians(t.Angle)
}

func degreesToRadians[T constraints.Integer | constraints.Float](n T) float64 {
	return float64(n) * (math.Pi / 180)
}

// Map is the decoded geometry of one level. Read-only after LoadMap.
type Map struct {
	Name     string
	Things   []Thing
	Linedefs []Linedef
	Sidedefs []Sidedef
	Vertexes []Vertex
}

// PlayerStart returns the first player 1 start
func (m *Map) PlayerStart() (Thing, bool) {
	for _, t := range m.Things {
		if t.Type == PlayerStart {
			return t, true
		}
	}
	return Thing{}, false
}

// MiddleTexture returns the middle texture of the linedef's right side.
// ok is false when the side is absent or its index is out of range.
func (m *Map) MiddleTexture(l Linedef) (name string, ok bool) {
	if l.Right == NoSide || int(l.Right) >= len(m.Sidedefs) {
		return "", false
	}
	return m.Sidedefs[l.Right].Middle, true
}

// LoadMap decodes the map whose marker lump is called name.
// The four data lumps are taken by position; unexpected names are logged.
func (a *Archive) LoadMap(name string) (*Map, error) {
	name = strings.ToUpper(name)
	idx := a.Index(name)
	if idx < 0 {
		return nil, &NotFoundError{Kind: "map", Name: name}
	}
	if idx+len(mapLumps) >= len(a.Lumps) {
		return nil, &FormatError{
			What:   "map " + name,
			Offset: idx,
			Reason: fmt.Sprintf("directory has %d lumps, map needs %d after marker", len(a.Lumps), len(mapLumps)),
		}
	}

	log := logger.For("wad").WithField("map", name)

	var raw [len(mapLumps)][]byte
	for i, want := range mapLumps {
		l := a.Lumps[idx+1+i]
		if l.Name != want {
			log.WithFields(logrus.Fields{
				"position": i + 1,
				"expected": want,
				"found":    l.Name,
			}).Warn("unexpected lump name, trusting position")
		}
		data, err := a.LumpData(l)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", name, err)
		}
		raw[i] = data
	}

	m := &Map{Name: name}
	var err error
	if m.Things, err = decodeRecords("THINGS", raw[0], ThingSize, decodeThing); err != nil {
		return nil, err
	}
	if m.Linedefs, err = decodeRecords("LINEDEFS", raw[1], LinedefSize, decodeLinedef); err != nil {
		return nil, err
	}
	if m.Sidedefs, err = decodeRecords("SIDEDEFS", raw[2], SidedefSize, decodeSidedef); err != nil {
		return nil, err
	}
	if m.Vertexes, err = decodeRecords("VERTEXES", raw[3], VertexSize, decodeVertex); err != nil {
		return nil, err
	}

	for i, l := range m.Linedefs {
		if int(l.Start) >= len(m.Vertexes) || int(l.End) >= len(m.Vertexes) {
			return nil, &FormatError{
				What:   "LINEDEFS",
				Offset: i * LinedefSize,
				Reason: fmt.Sprintf("vertex index %d/%d out of range (%d vertexes)", l.Start, l.End, len(m.Vertexes)),
			}
		}
	}

	log.WithFields(logrus.Fields{
		"things":   len(m.Things),
		"linedefs": len(m.Linedefs),
		"sidedefs": len(m.Sidedefs),
		"vertexes": len(m.Vertexes),
	}).Info("map decoded")

	return m, nil
}

func decodeRecords[T any](what string, data []byte, size int, decode func([]byte) T) ([]T, error) {
	if rem := len(data) % size; rem != 0 {
		return nil, &FormatError{
			What:   what,
			Offset: len(data) - rem,
			Reason: fmt.Sprintf("lump size %d is not a multiple of %d", len(data), size),
		}
	}
	out := make([]T, len(data)/size)
	for i := range out {
		out[i] = decode(data[i*size : (i+1)*size])
	}
	return out, nil
}

func i16(b []byte) int { return int(int16(binary.LittleEndian.Uint16(b))) }

func u16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

func decodeVertex(b []byte) Vertex {
	return Vertex{X: i16(b[0:]), Y: i16(b[2:])}
}

func decodeLinedef(b []byte) Linedef {
	return Linedef{
		Start:   u16(b[0:]),
		End:     u16(b[2:]),
		Flags:   u16(b[4:]),
		Special: u16(b[6:]),
		Tag:     u16(b[8:]),
		Right:   u16(b[10:]),
		Left:    u16(b[12:]),
	}
}

func decodeSidedef(b []byte) Sidedef {
	return Sidedef{
		XOffset: i16(b[0:]),
		YOffset: i16(b[2:]),
		Upper:   decodeName(b[4:12]),
		Lower:   decodeName(b[12:20]),
		Middle:  decodeName(b[20:28]),
		Sector:  i16(b[28:]),
	}
}

func decodeThing(b []byte) Thing {
	return Thing{
		X:     i16(b[0:]),
		Y:     i16(b[2:]),
		Angle: i16(b[4:]),
		Type:  i16(b[6:]),
		Flags: i16(b[8:]),
	}
}
