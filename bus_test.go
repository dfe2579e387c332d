package ili9341

import (
	"bytes"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"

	"periph.io/x/devices/v3/ili9341/image565"
)

func newRecordBus(t *testing.T) (*spiBus, *spitest.Record) {
	t.Helper()
	rec := &spitest.Record{}
	c, err := rec.Connect(physic.MegaHertz, spi.Mode0, 8)
	require.NoError(t, err)
	return newSPIBus(c), rec
}

func TestSPIBusWordSize(t *testing.T) {
	b, rec := newRecordBus(t)

	assert.ErrorIs(t, b.Write16([]uint16{1}), ErrWordSize)
	require.NoError(t, b.SetWordSize(16))
	assert.ErrorIs(t, b.Write([]byte{1}), ErrWordSize)
	assert.ErrorIs(t, b.SetWordSize(9), ErrWordSize)
	assert.Empty(t, rec.Ops)
	assert.Equal(t, "record", b.String())
}

func TestSPIBusWordSizeIsLocal(t *testing.T) {
	b, rec := newRecordBus(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.SetWordSize(16))
		require.NoError(t, b.SetWordSize(8))
	}
	assert.Empty(t, rec.Ops, "switching sends nothing")

	require.NoError(t, b.Write([]byte{cmdRAMWR}))
	require.NoError(t, b.SetWordSize(16))
	require.NoError(t, b.Write16([]uint16{0x1234}))
	assert.Equal(t, []conntest.IO{{W: []byte{cmdRAMWR}}, {W: []byte{0x12, 0x34}}}, rec.Ops)
}

func TestSPIBusBigEndian(t *testing.T) {
	b, rec := newRecordBus(t)
	require.NoError(t, b.SetWordSize(16))
	require.NoError(t, b.Write16([]uint16{0xF800, 0x07E0, 0x001F}))
	assert.Equal(t, []conntest.IO{{W: []byte{0xF8, 0x00, 0x07, 0xE0, 0x00, 0x1F}}}, rec.Ops)
}

func TestSPIBusChunks(t *testing.T) {
	b, rec := newRecordBus(t)
	require.Equal(t, defaultMaxTx, b.maxTx)

	data := make([]byte, 5000)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, b.Write(data))
	require.Len(t, rec.Ops, 2)
	assert.Len(t, rec.Ops[0].W, 4096)
	assert.Len(t, rec.Ops[1].W, 904)
	assert.Equal(t, data, append(rec.Ops[0].W, rec.Ops[1].W...))

	rec.Ops = nil
	require.NoError(t, b.SetWordSize(16))
	words := make([]uint16, 3000)
	for i := range words {
		words[i] = uint16(i)
	}
	require.NoError(t, b.Write16(words))
	require.Len(t, rec.Ops, 2)
	assert.Len(t, rec.Ops[0].W, 4096)
	assert.Len(t, rec.Ops[1].W, 1904)
	assert.Equal(t, []byte{0x07, 0xFF}, rec.Ops[1].W[:2], "word 2047 leads the second chunk")
}

func TestSPIBusRaw(t *testing.T) {
	var out bytes.Buffer
	raw := spitest.NewRecordRaw(&out)
	c, err := raw.Connect(physic.MegaHertz, spi.Mode0, 8)
	require.NoError(t, err)

	b := newSPIBus(c)
	require.NoError(t, b.Write([]byte{cmdRAMWR}))
	require.NoError(t, b.SetWordSize(16))
	require.NoError(t, b.Write16([]uint16{0xABCD}))
	assert.Equal(t, []byte{cmdRAMWR, 0xAB, 0xCD}, out.Bytes())
}

func TestNewSPI(t *testing.T) {
	rec := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	dev, err := NewSPI(rec, Pins{DC: dc}, &Opts{Sleep: func(time.Duration) {}})
	require.NoError(t, err)

	assert.Equal(t, []conntest.IO{
		{W: []byte{cmdSWRESET}},
		{W: []byte{cmdGAMMASET}}, {W: []byte{0x04}},
		{W: []byte{cmdMADCTL}}, {W: []byte{0x48}},
		{W: []byte{cmdPIXFMT}}, {W: []byte{0x55}},
		{W: []byte{cmdFRMCTR1}}, {W: []byte{0x00, 0x1B}},
		{W: []byte{cmdSLPOUT}},
		{W: []byte{cmdDISPON}},
	}, rec.Ops)

	rec.Ops = nil
	img, err := image565.New(image.Rect(0, 0, 2, 1))
	require.NoError(t, err)
	img.Pix[0], img.Pix[1] = 0xF800, 0x001F
	require.NoError(t, dev.DrawBuffer(0, 0, img))
	assert.Equal(t, []conntest.IO{
		{W: []byte{cmdCASET}}, {W: []byte{0x00, 0x00, 0x00, 0x01}},
		{W: []byte{cmdPASET}}, {W: []byte{0x00, 0x00, 0x00, 0x00}},
		{W: []byte{cmdRAMWR}},
		{W: []byte{0xF8, 0x00, 0x00, 0x1F}},
	}, rec.Ops)

	// A port only connects once.
	_, err = NewSPI(rec, Pins{DC: dc}, nil)
	assert.Error(t, err)
}
