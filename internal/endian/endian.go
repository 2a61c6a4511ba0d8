package endian

import (
	"encoding/binary"
	"unsafe"
)

var (
	isBig     bool
	byteOrder binary.ByteOrder
)

func init() {
	var i int32 = 0x01020304
	b := (*[4]byte)(unsafe.Pointer(&i))
	isBig = b[0] == 0x01
	if isBig {
		byteOrder = binary.BigEndian
	} else {
		byteOrder = binary.LittleEndian
	}
}

// IsBig checks if the machine uses the big endian byte ordering.
func IsBig() bool {
	return isBig
}

// IsLittle checks if the machine uses the little endian byte ordering.
func IsLittle() bool {
	return !isBig
}

// ByteOrder returns the native byte order of the machine.
func ByteOrder() binary.ByteOrder {
	return byteOrder
}
