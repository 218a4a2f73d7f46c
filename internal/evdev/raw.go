package evdev

import (
	"encoding/binary"
)

// rawEvent mirrors the kernel input_event struct on 64-bit platforms:
// two 64-bit time fields followed by type, code, and value.
type rawEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// rawEventSize is the wire size of input_event on 64-bit kernels.
const rawEventSize = 24

// Kernel event type and value constants from linux/input-event-codes.h.
const (
	evKey = 0x01

	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// decodeRawEvent decodes one little-endian input_event frame. buf must hold
// at least rawEventSize bytes.
func decodeRawEvent(buf []byte) rawEvent {
	return rawEvent{
		Sec:   int64(binary.LittleEndian.Uint64(buf[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(buf[8:16])),
		Type:  binary.LittleEndian.Uint16(buf[16:18]),
		Code:  binary.LittleEndian.Uint16(buf[18:20]),
		Value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}
}

// timestamp returns the kernel event time as float epoch seconds.
func (r rawEvent) timestamp() float64 {
	return float64(r.Sec) + float64(r.Usec)/1e6
}
