package common

import "unsafe"

// Mat42Size is the number of float32 elements in a 4x2 tile transform matrix
// (4 columns of 2 rows, column-major order).
const Mat42Size = 8

// Identity42 resets a 4x2 matrix (flat slice, column-major) to the identity
// embedding: the upper-left 2x2 block is the identity and all other columns
// (including the translation column) are zero.
//
// Parameters:
//   - m: destination slice (must be at least 8 elements)
func Identity42(m []float32) {
	for i := range m[:Mat42Size] {
		m[i] = 0
	}
	m[0], m[3] = 1, 1
}

// Translate42 sets the translation column of a 4x2 matrix without touching the
// linear columns. Column 3 multiplies the homogeneous w component, so these two
// elements are the clip-space translation.
//
// Parameters:
//   - m: destination slice (must be at least 8 elements)
//   - tx, ty: translation applied after the linear part
func Translate42(m []float32, tx, ty float32) {
	m[6] = tx
	m[7] = ty
}

// Scale42 sets the diagonal of the linear part of a 4x2 matrix, leaving the
// translation column untouched.
//
// Parameters:
//   - m: destination slice (must be at least 8 elements)
//   - sx, sy: per-axis scale factors
func Scale42(m []float32, sx, sy float32) {
	m[0] = sx
	m[3] = sy
}

// OrthoCanvas42 builds the 4x2 matrix mapping a canvas rectangle in world tile
// units to clip space. The canvas follows the tile convention: x grows right,
// y grows DOWN, so the y axis is flipped into clip space (+y up). The z column
// stays zero; the tile vertex stage does not produce depth.
//
// Parameters:
//   - out: destination slice (must be at least 8 elements)
//   - left, top: world coordinate of the canvas top-left corner
//   - right, bottom: world coordinate of the canvas bottom-right corner
func OrthoCanvas42(out []float32, left, top, right, bottom float32) {
	for i := range out[:Mat42Size] {
		out[i] = 0
	}
	out[0] = 2 / (right - left)
	out[3] = -2 / (bottom - top)
	out[6] = -(right + left) / (right - left)
	out[7] = (bottom + top) / (bottom - top)
}

// Mul42Vec4 multiplies a 4x2 matrix (flat slice, column-major) with a
// homogeneous 4-component vector.
//
// Parameters:
//   - m: the 4x2 matrix (must be at least 8 elements)
//   - v: the homogeneous vector (x, y, z, w)
//
// Returns:
//   - [2]float32: the transformed 2D point
func Mul42Vec4(m []float32, v [4]float32) [2]float32 {
	return [2]float32{
		m[0]*v[0] + m[2]*v[1] + m[4]*v[2] + m[6]*v[3],
		m[1]*v[0] + m[3]*v[1] + m[5]*v[2] + m[7]*v[3],
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
