package ili9341

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
)

// Bus transfers command bytes and pixel words to the controller.
//
// The ILI9341 serial interface runs in one of two word sizes: 8 bits for
// commands and their parameters, 16 bits for streaming RGB565 pixels. A Bus
// is told which one to use with SetWordSize and must reject transfers that do
// not match it.
type Bus interface {
	// SetWordSize selects 8 or 16 bit words.
	SetWordSize(bits int) error
	// Write sends bytes. The bus must be in 8 bit mode.
	Write(p []byte) error
	// Write16 sends 16 bit words, most significant bit first. The bus must be
	// in 16 bit mode.
	Write16(p []uint16) error
}

// ErrWordSize is returned by the SPI bus when a transfer does not match the
// selected word size.
var ErrWordSize = errors.New("ili9341: transfer does not match bus word size")

// defaultMaxTx is used when the connection does not report a limit.
const defaultMaxTx = 4096

// spiBus implements Bus on a periph connection opened for 8 bit words.
//
// The word size switch is emulated. The connection is never reconfigured, so
// SetWordSize only records the mode and costs no bus traffic; it exists to
// reject transfers of the wrong kind. In 16 bit mode words are serialized
// big-endian, which puts them on the wire in the order the controller expects
// regardless of host endianness. Transports that can change the word size in
// hardware implement Bus themselves and are passed to New.
type spiBus struct {
	c     conn.Conn
	maxTx int
	bits  int
	buf   []byte
}

func newSPIBus(c conn.Conn) *spiBus {
	maxTx := defaultMaxTx
	if l, ok := c.(conn.Limits); ok {
		if n := l.MaxTxSize(); n > 0 {
			maxTx = n
		}
	}
	// Keep room for whole words.
	maxTx &^= 1
	if maxTx == 0 {
		maxTx = 2
	}
	return &spiBus{c: c, maxTx: maxTx, bits: 8}
}

func (b *spiBus) String() string {
	return b.c.String()
}

// SetWordSize records the word size for the following writes. Nothing is
// sent.
func (b *spiBus) SetWordSize(bits int) error {
	if bits != 8 && bits != 16 {
		return fmt.Errorf("%w: unsupported size %d", ErrWordSize, bits)
	}
	b.bits = bits
	return nil
}

func (b *spiBus) Write(p []byte) error {
	if b.bits != 8 {
		return fmt.Errorf("%w: %d byte write in 16 bit mode", ErrWordSize, len(p))
	}
	for len(p) > 0 {
		n := min(len(p), b.maxTx)
		if err := b.c.Tx(p[:n], nil); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

func (b *spiBus) Write16(p []uint16) error {
	if b.bits != 16 {
		return fmt.Errorf("%w: %d word write in 8 bit mode", ErrWordSize, len(p))
	}
	if b.buf == nil {
		b.buf = make([]byte, b.maxTx)
	}
	for len(p) > 0 {
		n := min(len(p), len(b.buf)/2)
		for i, w := range p[:n] {
			b.buf[2*i] = byte(w >> 8)
			b.buf[2*i+1] = byte(w)
		}
		if err := b.c.Tx(b.buf[:2*n], nil); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
