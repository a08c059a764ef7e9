// SPDX-License-Identifier: GPL-2.0-or-later

// Package dump writes the spatial state of a world in protobuf wire format
// for offline inspection. The layout is
//
//	message Snapshot {
//	  bytes world_id = 1;
//	  int32 cols = 2;
//	  int32 rows = 3;
//	  float cell_size = 4;
//	  repeated Thing things = 5;
//	}
//	message Thing {
//	  int32 id = 1;
//	  float x = 2;
//	  float y = 3;
//	  float z = 4;
//	  float radius = 5;
//	  float height = 6;
//	  bool linked = 7;
//	  sint32 cell_x = 8;
//	  sint32 cell_y = 9;
//	  sint32 subsector = 10;
//	  repeated sint32 sectors = 11;
//	}
package dump

import (
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"goedge/bsp"
	"goedge/math/vec"
	"goedge/world"
)

var ErrBadSnapshot = errors.New("bad snapshot")

type Thing struct {
	ID        int32
	Pos       vec.Vec3
	Radius    float32
	Height    float32
	Linked    bool
	CellX     int32
	CellY     int32
	Subsector int32
	Sectors   []int32
}

type Snapshot struct {
	WorldID  uuid.UUID
	Cols     int32
	Rows     int32
	CellSize float32
	Things   []Thing
}

// Take records the current state of w.
func Take(w *world.World) *Snapshot {
	bm := w.Blockmap()
	cols, rows := bm.Dims()
	s := &Snapshot{
		WorldID:  w.ID(),
		Cols:     int32(cols),
		Rows:     int32(rows),
		CellSize: bm.CellSize,
	}
	w.ForEachThing(func(id world.ThingID, t world.Thing) bool {
		st := Thing{
			ID:        int32(id),
			Pos:       t.Pos,
			Radius:    t.Radius,
			Height:    t.Height,
			Linked:    t.Linked(),
			CellX:     -1,
			CellY:     -1,
			Subsector: -1,
		}
		if t.Linked() {
			st.Subsector = int32(t.Subsector)
			if cx, cy, ok := bm.ThingCell(id); ok {
				st.CellX, st.CellY = int32(cx), int32(cy)
			}
			w.ForEachTouchedSector(id, func(sec bsp.SectorID) bool {
				st.Sectors = append(st.Sectors, int32(sec))
				return true
			})
		}
		s.Things = append(s.Things, st)
		return true
	})
	return s
}

func Encode(w *world.World) []byte {
	return Take(w).Marshal()
}

func Decode(b []byte) (*Snapshot, error) {
	return Unmarshal(b)
}

// Save writes the snapshot of w to a file.
func Save(path string, w *world.World) error {
	if err := os.WriteFile(path, Encode(w), 0660); err != nil {
		return errors.Wrap(err, "dump")
	}
	return nil
}

func Load(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "dump")
	}
	return Decode(b)
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendInt(b []byte, num protowire.Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendSint(b []byte, num protowire.Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func (s *Snapshot) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, s.WorldID[:])
	b = appendInt(b, 2, s.Cols)
	b = appendInt(b, 3, s.Rows)
	b = appendFloat(b, 4, s.CellSize)
	for i := range s.Things {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Things[i].marshal())
	}
	return b
}

func (t *Thing) marshal() []byte {
	var b []byte
	b = appendInt(b, 1, t.ID)
	b = appendFloat(b, 2, t.Pos.X)
	b = appendFloat(b, 3, t.Pos.Y)
	b = appendFloat(b, 4, t.Pos.Z)
	b = appendFloat(b, 5, t.Radius)
	b = appendFloat(b, 6, t.Height)
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(t.Linked))
	b = appendSint(b, 8, t.CellX)
	b = appendSint(b, 9, t.CellY)
	b = appendSint(b, 10, t.Subsector)
	if len(t.Sectors) > 0 {
		var p []byte
		for _, s := range t.Sectors {
			p = protowire.AppendVarint(p, protowire.EncodeZigZag(int64(s)))
		}
		b = protowire.AppendTag(b, 11, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	return b
}

// field is one decoded field. Only the member matching typ is set.
type field struct {
	num   protowire.Number
	typ   protowire.Type
	v     uint64
	bytes []byte
}

// fields walks the top level fields of a message. Unknown field types are
// skipped.
func fields(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(ErrBadSnapshot, protowire.ParseError(n).Error())
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.v, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.v = uint64(v)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errors.Wrapf(ErrBadSnapshot, "field %d: %v", num, protowire.ParseError(n))
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func Unmarshal(b []byte) (*Snapshot, error) {
	s := &Snapshot{}
	err := fields(b, func(f field) error {
		switch f.num {
		case 1:
			id, err := uuid.FromBytes(f.bytes)
			if err != nil {
				return errors.Wrap(ErrBadSnapshot, err.Error())
			}
			s.WorldID = id
		case 2:
			s.Cols = int32(f.v)
		case 3:
			s.Rows = int32(f.v)
		case 4:
			s.CellSize = math.Float32frombits(uint32(f.v))
		case 5:
			t, err := unmarshalThing(f.bytes)
			if err != nil {
				return err
			}
			s.Things = append(s.Things, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unmarshalThing(b []byte) (Thing, error) {
	var t Thing
	err := fields(b, func(f field) error {
		fl := math.Float32frombits(uint32(f.v))
		si := int32(protowire.DecodeZigZag(f.v))
		switch f.num {
		case 1:
			t.ID = int32(f.v)
		case 2:
			t.Pos.X = fl
		case 3:
			t.Pos.Y = fl
		case 4:
			t.Pos.Z = fl
		case 5:
			t.Radius = fl
		case 6:
			t.Height = fl
		case 7:
			t.Linked = protowire.DecodeBool(f.v)
		case 8:
			t.CellX = si
		case 9:
			t.CellY = si
		case 10:
			t.Subsector = si
		case 11:
			for p := f.bytes; len(p) > 0; {
				v, n := protowire.ConsumeVarint(p)
				if n < 0 {
					return errors.Wrapf(ErrBadSnapshot, "sectors: %v", protowire.ParseError(n))
				}
				t.Sectors = append(t.Sectors, int32(protowire.DecodeZigZag(v)))
				p = p[n:]
			}
		}
		return nil
	})
	return t, err
}
