// Package proto defines the board intents carried in kernel.Message.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgNewEquation Kind = iota + 1
	MsgLoadEquation
	MsgClear
	MsgSetDivisions
	MsgAddPiece
	MsgMovePiece
	MsgBeginDrag
	MsgDragPiece
	MsgDropPiece
	MsgSettle
	MsgTick
)

func (k Kind) String() string {
	switch k {
	case MsgNewEquation:
		return "new_equation"
	case MsgLoadEquation:
		return "load_equation"
	case MsgClear:
		return "clear"
	case MsgSetDivisions:
		return "set_divisions"
	case MsgAddPiece:
		return "add_piece"
	case MsgMovePiece:
		return "move_piece"
	case MsgBeginDrag:
		return "begin_drag"
	case MsgDragPiece:
		return "drag_piece"
	case MsgDropPiece:
		return "drop_piece"
	case MsgSettle:
		return "settle"
	case MsgTick:
		return "tick"
	default:
		return "unknown"
	}
}
