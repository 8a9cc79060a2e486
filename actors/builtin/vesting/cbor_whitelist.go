package vesting

import (
	"io"

	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// WhitelistParams is encoded as a one-element tuple holding an array of text strings.

func (t *WhitelistParams) MarshalCBOR(w io.Writer) error {
	if t == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	if len(t.Addresses) > cbg.MaxLength {
		return xerrors.Errorf("too many addresses: %d", len(t.Addresses))
	}

	scratch := make([]byte, 9)
	if err := cbg.WriteMajorTypeHeaderBuf(scratch, w, cbg.MajArray, 1); err != nil {
		return err
	}
	if err := cbg.WriteMajorTypeHeaderBuf(scratch, w, cbg.MajArray, uint64(len(t.Addresses))); err != nil {
		return err
	}
	for _, addr := range t.Addresses {
		if len(addr) > cbg.MaxLength {
			return xerrors.Errorf("address too long: %d bytes", len(addr))
		}
		if err := cbg.WriteMajorTypeHeaderBuf(scratch, w, cbg.MajTextString, uint64(len(addr))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, addr); err != nil {
			return err
		}
	}
	return nil
}

func (t *WhitelistParams) UnmarshalCBOR(r io.Reader) error {
	*t = WhitelistParams{}

	br := cbg.GetPeeker(r)
	scratch := make([]byte, 8)

	maj, extra, err := cbg.CborReadHeaderBuf(br, scratch)
	if err != nil {
		return err
	}
	if maj != cbg.MajArray {
		return xerrors.New("cbor input should be of type array")
	}
	if extra != 1 {
		return xerrors.New("cbor input had wrong number of fields")
	}

	maj, extra, err = cbg.CborReadHeaderBuf(br, scratch)
	if err != nil {
		return err
	}
	if maj != cbg.MajArray {
		return xerrors.New("addresses: expected cbor array")
	}
	if extra > cbg.MaxLength {
		return xerrors.Errorf("addresses: array too large (%d)", extra)
	}
	if extra > 0 {
		t.Addresses = make([]string, extra)
	}
	for i := range t.Addresses {
		if t.Addresses[i], err = cbg.ReadStringBuf(br, scratch); err != nil {
			return xerrors.Errorf("addresses[%d]: %w", i, err)
		}
	}
	return nil
}
