package dict

import "unsafe"

// asSlice reinterprets a byte slice as a slice of T without copying, so
// an mmap'd region can be presented as a typed array without parsing it
// into a tree of Go structs first. The caller is responsible for keeping the
// backing byte slice alive for as long as the returned slice is used;
// in this package that lifetime is tied to the Dictionary that owns the
// mmap region or heap copy.
func asSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	n := len(b) / size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// sizeOf returns the on-disk size of T, for bounds-checking raw blobs
// before handing them to asSlice.
func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
