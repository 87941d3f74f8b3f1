package dict

import "encoding/binary"

// Matrix is the connection-cost table: O(1) access to the
// transition cost between a predecessor's right_context_id and a
// successor's left_context_id. On-disk layout:
//
//	u16 forward_size, u16 backward_size, i16[forward_size*backward_size] LE
//
// forward_size is the dimension indexed by a predecessor's
// right_context_id; backward_size is the dimension indexed by a
// successor's left_context_id, giving cells a row-major layout of
// cells[r*backwardSize+l].
type Matrix struct {
	forwardSize, backwardSize int
	cells                     []int16
}

func newMatrix(raw []byte) (*Matrix, error) {
	if len(raw) < 4 {
		return nil, loadErr("parse matrix.mtx", ErrCorruptHeader)
	}
	forward := int(binary.LittleEndian.Uint16(raw[0:2]))
	backward := int(binary.LittleEndian.Uint16(raw[2:4]))
	need := 4 + forward*backward*2
	if len(raw) < need {
		return nil, loadErr("parse matrix.mtx", ErrCorruptHeader)
	}
	cells := asSlice[int16](raw[4:need])
	return &Matrix{forwardSize: forward, backwardSize: backward, cells: cells}, nil
}

// ForwardSize is the number of distinct right_context_id values the
// matrix covers.
func (m *Matrix) ForwardSize() int { return m.forwardSize }

// BackwardSize is the number of distinct left_context_id values the
// matrix covers.
func (m *Matrix) BackwardSize() int { return m.backwardSize }

// Cost returns the transition cost of following a word whose
// right_context_id is rightID with a word whose left_context_id is
// leftID. Out-of-range ids return 0; every context id an entry actually
// carries is always in range, so this path is purely defensive.
func (m *Matrix) Cost(rightID, leftID uint16) int16 {
	r, l := int(rightID), int(leftID)
	if r < 0 || r >= m.forwardSize || l < 0 || l >= m.backwardSize {
		return 0
	}
	return m.cells[r*m.backwardSize+l]
}
