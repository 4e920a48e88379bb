package proto

import (
	"encoding/binary"
	"math"

	"github.com/GabrielDSAlves/jogo/board/piece"
)

// AddPiecePayload encodes a palette request.
//
// Layout:
//   - u8: kind (piece.Kind)
//   - i8: sign (+1 or -1)
func AddPiecePayload(kind piece.Kind, sign piece.Sign) []byte {
	return []byte{byte(kind), byte(int8(sign))}
}

func DecodeAddPiecePayload(b []byte) (kind piece.Kind, sign piece.Sign, ok bool) {
	if len(b) != 2 {
		return 0, 0, false
	}
	kind = piece.Kind(b[0])
	sign = piece.Sign(int8(b[1]))
	if !kind.Valid() || !sign.Valid() {
		return 0, 0, false
	}
	return kind, sign, true
}

// MovePiecePayload encodes a move to a side and band.
//
// Layout (little-endian):
//   - u32: piece id
//   - u8: side (piece.Side)
//   - u16: band index
func MovePiecePayload(id int, side piece.Side, sub int) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(id))
	buf[4] = byte(side)
	binary.LittleEndian.PutUint16(buf[5:7], uint16(sub))
	return buf
}

func DecodeMovePiecePayload(b []byte) (id int, side piece.Side, sub int, ok bool) {
	if len(b) != 7 {
		return 0, 0, 0, false
	}
	side = piece.Side(b[4])
	if !side.Valid() {
		return 0, 0, 0, false
	}
	id = int(binary.LittleEndian.Uint32(b[0:4]))
	sub = int(binary.LittleEndian.Uint16(b[5:7]))
	return id, side, sub, true
}

// SetDivisionsPayload encodes a band count. Values below 1 are carried as
// 0 so the receiver reports the request as invalid.
//
// Layout (little-endian):
//   - u16: divisions
func SetDivisionsPayload(n int) []byte {
	if n < 0 || n > math.MaxUint16 {
		n = 0
	}
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(n))
	return buf
}

func DecodeSetDivisionsPayload(b []byte) (n int, ok bool) {
	if len(b) != 2 {
		return 0, false
	}
	return int(binary.LittleEndian.Uint16(b)), true
}

// PiecePayload encodes a bare piece id (begin drag, drop).
//
// Layout (little-endian):
//   - u32: piece id
func PiecePayload(id int) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(id))
	return buf
}

func DecodePiecePayload(b []byte) (id int, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	return int(binary.LittleEndian.Uint32(b)), true
}

// DragPiecePayload encodes the new top-left corner of a dragged piece.
//
// Layout (little-endian):
//   - u32: piece id
//   - i32: x
//   - i32: y
func DragPiecePayload(id int, pos piece.Point) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(id))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(pos.X)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(pos.Y)))
	return buf
}

func DecodeDragPiecePayload(b []byte) (id int, pos piece.Point, ok bool) {
	if len(b) != 12 {
		return 0, piece.Point{}, false
	}
	id = int(binary.LittleEndian.Uint32(b[0:4]))
	pos.X = int(int32(binary.LittleEndian.Uint32(b[4:8])))
	pos.Y = int(int32(binary.LittleEndian.Uint32(b[8:12])))
	return id, pos, true
}

// TickPayload encodes elapsed seconds.
//
// Layout (little-endian):
//   - u32: float32 bits
func TickPayload(dt float64) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(dt)))
	return buf
}

func DecodeTickPayload(b []byte) (dt float64, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(b))
	if math.IsNaN(float64(v)) || v < 0 {
		return 0, false
	}
	return float64(v), true
}

// LoadEquationPayload encodes equation text as UTF-8.
func LoadEquationPayload(text string) []byte { return []byte(text) }

func DecodeLoadEquationPayload(b []byte) (text string, ok bool) {
	return string(b), true
}
