package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteOrder(t *testing.T) {
	assert.NotEqual(t, IsBig(), IsLittle())
	if IsBig() {
		assert.Equal(t, binary.BigEndian, ByteOrder())
	} else {
		assert.Equal(t, binary.LittleEndian, ByteOrder())
	}
}
