package abi

import (
	"fmt"
	"io"
)

// EmptyValue is the parameter or return value of methods that carry none.
type EmptyValue struct{}

// Empty is a convenient non-nil empty value.
var Empty = &EmptyValue{}

// 0x80 is empty list (major type 4 with zero length)
// This is encoded with empty-list since we use tuple-encoding for everything.
const emptyListEncoded = 0x80

func (EmptyValue) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{emptyListEncoded})
	return err
}

func (*EmptyValue) UnmarshalCBOR(r io.Reader) error {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if buf[0] != emptyListEncoded {
		return fmt.Errorf("invalid empty value %x", buf[0])
	}
	return nil
}
