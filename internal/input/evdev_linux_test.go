//go:build linux

package input

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func record(typ, code uint16, value int32) ([]byte, int) {
	tvSize := binary.Size(unix.Timeval{})
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec, tvSize
}

func TestDecodeEvent(t *testing.T) {
	rec, tv := record(evKey, keyP, keyPressed)
	key, ok := decodeEvent(rec, tv)
	assert.True(t, ok)
	assert.Equal(t, Export, key)

	rec, tv = record(evKey, keyF4, keyPressed)
	key, ok = decodeEvent(rec, tv)
	assert.True(t, ok)
	assert.Equal(t, Exit, key)

	// Releases and repeats are ignored.
	rec, tv = record(evKey, keyP, 0)
	_, ok = decodeEvent(rec, tv)
	assert.False(t, ok)
	rec, tv = record(evKey, keyP, 2)
	_, ok = decodeEvent(rec, tv)
	assert.False(t, ok)

	// Non-key events are ignored.
	rec, tv = record(0x02, keyP, keyPressed)
	_, ok = decodeEvent(rec, tv)
	assert.False(t, ok)
}

func TestEvdevSourceWithoutDevices(t *testing.T) {
	src := NewEvdevSource(nil)
	src.Pattern = t.TempDir() + "/event*"
	assert.NoError(t, src.Start(t.Context()))
	assert.NoError(t, src.Stop())
}
