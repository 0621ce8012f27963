package rangeset

import "math/bits"

type myuint64 uint64

// addOne returns u + 1 and whether the addition wrapped around.
func (u myuint64) addOne() (myuint64, bool) {
	sum, carry := bits.Add64(uint64(u), 1, 0)
	return myuint64(sum), carry != 0
}

// subOne returns u - 1 and whether the subtraction wrapped around.
func (u myuint64) subOne() (myuint64, bool) {
	diff, borrow := bits.Sub64(uint64(u), 1, 0)
	return myuint64(diff), borrow != 0
}

func bePutUint32(b []byte, v uint32) {
	_ = b[3] // early bounds check to guarantee safety of writes below
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func beUint32(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler; see golang.org/issue/14808
	return uint32(b[3]) | uint32(b[2])<<8 | uint32(b[1])<<16 | uint32(b[0])<<24
}
