package dict

import (
	"encoding/binary"
	"testing"
)

func buildMatrix(t *testing.T, forward, backward int, cells []int16) *Matrix {
	t.Helper()
	if len(cells) != forward*backward {
		t.Fatalf("cells length %d does not match forward*backward %d", len(cells), forward*backward)
	}
	raw := make([]byte, 4+len(cells)*2)
	binary.LittleEndian.PutUint16(raw[0:2], uint16(forward))
	binary.LittleEndian.PutUint16(raw[2:4], uint16(backward))
	for i, c := range cells {
		binary.LittleEndian.PutUint16(raw[4+i*2:6+i*2], uint16(c))
	}
	m, err := newMatrix(raw)
	if err != nil {
		t.Fatalf("newMatrix: %v", err)
	}
	return m
}

func TestMatrixCost(t *testing.T) {
	// 2x3 matrix, row-major: forward (right_context_id) indexes rows.
	m := buildMatrix(t, 2, 3, []int16{
		0, 10, 20,
		-5, 100, 200,
	})

	cases := []struct {
		right, left uint16
		want        int16
	}{
		{0, 0, 0},
		{0, 2, 20},
		{1, 0, -5},
		{1, 2, 200},
	}
	for _, c := range cases {
		if got := m.Cost(c.right, c.left); got != c.want {
			t.Errorf("Cost(%d, %d) = %d, want %d", c.right, c.left, got, c.want)
		}
	}
}

func TestMatrixCostOutOfRangeDefaultsToZero(t *testing.T) {
	m := buildMatrix(t, 1, 1, []int16{42})

	if got := m.Cost(5, 0); got != 0 {
		t.Errorf("out-of-range right id: Cost = %d, want 0", got)
	}
	if got := m.Cost(0, 5); got != 0 {
		t.Errorf("out-of-range left id: Cost = %d, want 0", got)
	}
}

func TestNewMatrixRejectsTruncatedBlob(t *testing.T) {
	raw := []byte{2, 0, 2, 0} // header claims 2x2 cells but body is empty
	if _, err := newMatrix(raw); err == nil {
		t.Fatal("expected error for truncated matrix blob")
	}
}
