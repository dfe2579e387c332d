package ili9341

// Command op-codes, from the ILI9341 datasheet (level 1 and 2 command sets).
const (
	cmdSWRESET  = 0x01 // Software reset
	cmdSLPIN    = 0x10 // Enter sleep mode
	cmdSLPOUT   = 0x11 // Sleep out
	cmdINVOFF   = 0x20 // Display inversion off
	cmdINVON    = 0x21 // Display inversion on
	cmdGAMMASET = 0x26 // Gamma curve select
	cmdDISPOFF  = 0x28 // Display off
	cmdDISPON   = 0x29 // Display on
	cmdCASET    = 0x2A // Column address set
	cmdPASET    = 0x2B // Page address set
	cmdRAMWR    = 0x2C // Memory write
	cmdMADCTL   = 0x36 // Memory access control
	cmdPIXFMT   = 0x3A // Pixel format set
	cmdFRMCTR1  = 0xB1 // Frame rate control, normal mode
)

// MADCTL bits.
const (
	madctlMY  = 0x80 // Row address order
	madctlMX  = 0x40 // Column address order
	madctlMV  = 0x20 // Row/column exchange
	madctlML  = 0x10 // Vertical refresh order
	madctlBGR = 0x08 // BGR color filter panel
	madctlMH  = 0x04 // Horizontal refresh order
)

const (
	madctlPortrait  = madctlMX | madctlBGR // 0x48
	madctlLandscape = madctlMV | madctlBGR // 0x28
)

// pixfmt16 selects 16 bits per pixel on both the RGB and MCU interfaces.
const pixfmt16 = 0x55

// Gamma curves selectable with GAMMASET.
type Gamma byte

const (
	Gamma1 Gamma = 0x01 // Curve 1 (G2.2), the reset default
	Gamma2 Gamma = 0x02 // Curve 2 (G1.8)
	Gamma3 Gamma = 0x04 // Curve 3 (G2.5)
	Gamma4 Gamma = 0x08 // Curve 4 (G1.0)
)
