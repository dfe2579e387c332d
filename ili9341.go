package ili9341

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"slices"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ili9341/image565"
)

// Panel size in portrait orientation.
const (
	Width  = 240
	Height = 320
)

var (
	// ErrHalted is returned by operations on a device that is not
	// initialized, either before Init or after Halt.
	ErrHalted = errors.New("ili9341: halted")
	// ErrBufferSize is returned when a pixel slice is shorter than the
	// rectangle it is drawn to.
	ErrBufferSize = errors.New("ili9341: pixel buffer too small")
)

// Opts is the configuration for the ILI9341 display.
type Opts struct {
	Landscape bool // 320x240 instead of 240x320

	Freq          physic.Frequency // SPI clock (default: 40MHz)
	BacklightFreq physic.Frequency // Backlight PWM frequency (default: 2kHz)

	FrameRate byte  // FRMCTR1 clocks per line (default: 0x1B, 70Hz)
	Gamma     Gamma // Gamma curve (default: Gamma3)

	// Sleep waits between reset and power steps. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

func (o *Opts) withDefaults() Opts {
	var r Opts
	if o != nil {
		r = *o
	}
	if r.Freq == 0 {
		r.Freq = 40 * physic.MegaHertz
	}
	if r.BacklightFreq == 0 {
		r.BacklightFreq = 2 * physic.KiloHertz
	}
	if r.FrameRate == 0 {
		r.FrameRate = 0x1B
	}
	if r.Gamma == 0 {
		r.Gamma = Gamma3
	}
	if r.Sleep == nil {
		r.Sleep = time.Sleep
	}
	return r
}

// Pins are the control lines besides the SPI bus.
type Pins struct {
	DC        gpio.PinOut // Data/Command select (required)
	RST       gpio.PinOut // Hardware reset (optional)
	Backlight gpio.PinOut // Backlight LED, PWM capable (optional)
}

// State is the controller state as tracked by the driver.
type State int

const (
	Uninitialized State = iota // Not initialized, or halted
	AwaitingReset              // Inside the reset sequence
	CommandMode                // Bus in 8 bit mode
	PixelMode                  // Bus in 16 bit mode
	Asleep                     // Display off, sleep mode, backlight off
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case AwaitingReset:
		return "AwaitingReset"
	case CommandMode:
		return "CommandMode"
	case PixelMode:
		return "PixelMode"
	case Asleep:
		return "Asleep"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Dev is the device handle for the ILI9341 display.
//
// A Dev is not safe for concurrent use.
type Dev struct {
	// Communication
	bus Bus
	dc  gpio.PinOut
	rst gpio.PinOut
	bl  gpio.PinOut

	opts Opts

	// Display geometry
	rect image.Rectangle

	// Shadow frames for differential updates, allocated on first use
	next, last *image565.Image
	lastValid  bool

	// Reusable line for Clear
	line      []uint16
	lineColor image565.Color

	// State
	initialized bool
	resetting   bool
	wide        bool // bus in 16 bit mode
	asleep      bool
	brightness  uint16
}

// NewSPI creates a new ILI9341 device connected via SPI and initializes it.
//
// The SPI port is configured for Mode0, 8 bit words, at opts.Freq.
// opts can be nil to use defaults (portrait, 40MHz).
func NewSPI(p spi.Port, pins Pins, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	c, err := p.Connect(o.Freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ili9341: connect: %w", err)
	}
	return New(newSPIBus(c), pins, &o)
}

// New creates a device on an arbitrary bus and initializes it.
func New(bus Bus, pins Pins, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("ili9341: bus is required")
	}
	if pins.DC == nil {
		return nil, errors.New("ili9341: DC pin is required")
	}
	o := opts.withDefaults()
	d := &Dev{
		bus:  bus,
		dc:   pins.DC,
		rst:  pins.RST,
		bl:   pins.Backlight,
		opts: o,
		rect: orientationRect(!o.Landscape),
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func orientationRect(portrait bool) image.Rectangle {
	if portrait {
		return image.Rect(0, 0, Width, Height)
	}
	return image.Rect(0, 0, Height, Width)
}

// Init resets and configures the panel, wakes it and turns the backlight on.
// The bus is left in 16 bit mode. Calling Init on an initialized device does
// nothing.
func (d *Dev) Init() error {
	if d.initialized {
		return nil
	}
	Logger().Debug("ili9341: init", "dev", d.String())
	if err := d.init(); err != nil {
		d.resetting = false
		d.initialized = false
		return d.fail("init", err)
	}
	return nil
}

func (d *Dev) init() error {
	d.resetting = true
	if err := d.setBacklight(math.MaxUint16); err != nil {
		return err
	}
	if err := d.bus.SetWordSize(8); err != nil {
		return err
	}
	d.wide = false

	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to pull DC low: %w", err)
	}
	if d.rst != nil {
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("failed to pull RST high: %w", err)
		}
		d.opts.Sleep(10 * time.Millisecond)
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("failed to pull RST low: %w", err)
		}
		d.opts.Sleep(10 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("failed to pull RST high: %w", err)
		}
		d.opts.Sleep(10 * time.Millisecond)
	}

	if err := d.sendCommand(cmdSWRESET); err != nil {
		return err
	}
	// The datasheet asks for 5ms; panels in the wild need more.
	d.opts.Sleep(100 * time.Millisecond)

	if err := d.sendCommand(cmdGAMMASET, byte(d.opts.Gamma)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdMADCTL, d.madctl()); err != nil {
		return err
	}
	if err := d.sendCommand(cmdPIXFMT, pixfmt16); err != nil {
		return err
	}
	if err := d.sendCommand(cmdFRMCTR1, 0x00, d.opts.FrameRate); err != nil {
		return err
	}
	d.resetting = false
	d.initialized = true
	d.asleep = true
	d.lastValid = false
	if err := d.wake(); err != nil {
		return err
	}
	if err := d.setBacklight(math.MaxUint16); err != nil {
		return err
	}
	return d.ensurePixelMode()
}

// State returns the controller state.
func (d *Dev) State() State {
	switch {
	case d.resetting:
		return AwaitingReset
	case !d.initialized:
		return Uninitialized
	case d.asleep:
		return Asleep
	case d.wide:
		return PixelMode
	}
	return CommandMode
}

// Halt puts the panel to sleep and marks the device uninitialized. Init may
// be called again afterwards.
func (d *Dev) Halt() error {
	if !d.initialized {
		return nil
	}
	err := d.Sleep()
	d.initialized = false
	d.next, d.last, d.lastValid = nil, nil, false
	return err
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ili9341.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image565.Model
}

// Bounds returns the image bounds of the display for the current
// orientation.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Portrait reports whether the display is in portrait orientation.
func (d *Dev) Portrait() bool {
	return d.rect.Dx() == Width
}

// NewBuffer allocates an image sized to the current orientation. Buffers
// must be recreated after SetOrientation.
func (d *Dev) NewBuffer() (*image565.Image, error) {
	return image565.New(d.rect)
}

// SetOrientation switches between portrait (240x320) and landscape
// (320x240). No buffer sized for the previous orientation may be drawn
// afterwards.
func (d *Dev) SetOrientation(portrait bool) error {
	d.rect = orientationRect(portrait)
	d.opts.Landscape = !portrait
	d.next, d.last, d.lastValid = nil, nil, false
	Logger().Debug("ili9341: orientation", "dev", d.String())
	if !d.initialized {
		// Applied by Init.
		return nil
	}
	if err := d.sendCommand(cmdMADCTL, d.madctl()); err != nil {
		return d.fail("set orientation", err)
	}
	return nil
}

func (d *Dev) madctl() byte {
	if d.opts.Landscape {
		return madctlLandscape
	}
	return madctlPortrait
}

// Sleep turns the display off, enters sleep mode and drives the backlight
// low. It does nothing if the panel is already asleep.
func (d *Dev) Sleep() error {
	if !d.initialized {
		return ErrHalted
	}
	if d.asleep {
		return nil
	}
	Logger().Debug("ili9341: sleep")
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return d.fail("sleep", err)
	}
	d.opts.Sleep(10 * time.Millisecond)
	if err := d.sendCommand(cmdSLPIN); err != nil {
		return d.fail("sleep", err)
	}
	d.opts.Sleep(10 * time.Millisecond)
	d.asleep = true
	if err := d.setBacklight(0); err != nil {
		return d.fail("sleep", err)
	}
	return nil
}

// Wake leaves sleep mode, turns the display on and restores full backlight.
// It does nothing if the panel is awake.
func (d *Dev) Wake() error {
	if !d.initialized {
		return ErrHalted
	}
	if err := d.wake(); err != nil {
		return d.fail("wake", err)
	}
	return nil
}

func (d *Dev) wake() error {
	if !d.asleep {
		return nil
	}
	Logger().Debug("ili9341: wake")
	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return err
	}
	// Minimum from the datasheet before DISPON.
	d.opts.Sleep(120 * time.Millisecond)
	if err := d.sendCommand(cmdDISPON); err != nil {
		return err
	}
	d.opts.Sleep(10 * time.Millisecond)
	d.asleep = false
	return d.setBacklight(math.MaxUint16)
}

// Brightness returns the last backlight level set.
func (d *Dev) Brightness() uint16 {
	return d.brightness
}

// SetBrightness sets the backlight level, 0 to 65535. Level 0 stops the PWM
// and drives the pin low. It does nothing when no backlight pin is
// configured.
func (d *Dev) SetBrightness(b uint16) error {
	if err := d.setBacklight(b); err != nil {
		return d.fail("set brightness", err)
	}
	return nil
}

// SetBrightnessPercent sets the backlight level in percent. Values are
// clamped to [0, 100].
func (d *Dev) SetBrightnessPercent(p float32) error {
	p = min(max(p, 0), 100)
	return d.SetBrightness(uint16(float64(p) * math.MaxUint16 / 100))
}

func (d *Dev) setBacklight(b uint16) error {
	d.brightness = b
	if d.bl == nil {
		return nil
	}
	if b == 0 {
		return d.bl.Out(gpio.Low)
	}
	duty := gpio.Duty(int64(b) * int64(gpio.DutyMax) / math.MaxUint16)
	return d.bl.PWM(duty, d.opts.BacklightFreq)
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if !d.initialized {
		return ErrHalted
	}
	cmd := byte(cmdINVOFF)
	if invert {
		cmd = cmdINVON
	}
	if err := d.sendCommand(cmd); err != nil {
		return d.fail("invert", err)
	}
	return nil
}

// SetGamma selects one of the predefined gamma curves.
func (d *Dev) SetGamma(g Gamma) error {
	if !d.initialized {
		return ErrHalted
	}
	if err := d.sendCommand(cmdGAMMASET, byte(g)); err != nil {
		return d.fail("set gamma", err)
	}
	d.opts.Gamma = g
	return nil
}

// DrawBuffer sends img to the panel with its top-left corner at (x, y). The
// parts outside the panel are skipped. A nil or released image is a no-op.
func (d *Dev) DrawBuffer(x, y int, img *image565.Image) error {
	if img.Released() {
		return nil
	}
	return d.drawRaw(x, y, img.Rect.Dx(), img.Rect.Dy(), img.Stride, img.Pix)
}

// DrawRaw sends a w by h block of RGB565 pixels, row-major in pix, with its
// top-left corner at (x, y). The parts outside the panel are skipped.
func (d *Dev) DrawRaw(x, y, w, h int, pix []uint16) error {
	return d.drawRaw(x, y, w, h, w, pix)
}

func (d *Dev) drawRaw(x, y, w, h, stride int, pix []uint16) error {
	if w <= 0 || h <= 0 || pix == nil {
		return nil
	}
	if !d.initialized {
		return ErrHalted
	}
	if len(pix) < (h-1)*stride+w {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrBufferSize, len(pix), w, h)
	}
	src := image.Rect(x, y, x+w, y+h)
	r := src.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	off := (r.Min.Y-y)*stride + (r.Min.X - x)
	if err := d.writeRect(r, pix[off:], stride); err != nil {
		return d.fail("draw", err)
	}
	d.remember(r, pix[off:], stride)
	return nil
}

// Draw implements display.Drawer.
//
// A full-panel *image565.Image drawn at the origin is sent as is. Anything
// else is composed into a shadow frame and only the bounding rectangle of the
// pixels that changed since the previous Draw is sent. The first composed
// Draw after Init, Halt or SetOrientation sends the whole shadow frame.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if !d.initialized {
		return ErrHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: source is already a full frame
	if img, ok := src.(*image565.Image); ok {
		if dst == d.rect && sp == (image.Point{}) && img.Rect == d.rect {
			return d.DrawBuffer(0, 0, img)
		}
	}

	if d.next == nil {
		var err error
		if d.next, err = image565.New(d.rect); err != nil {
			return d.fail("draw", err)
		}
		if d.last, err = image565.New(d.rect); err != nil {
			d.next = nil
			return d.fail("draw", err)
		}
	}

	draw.Draw(d.next, dst, src, sp, draw.Src)

	r := d.rect
	if d.lastValid {
		r = d.calculateDiff()
		if r.Empty() {
			return nil
		}
	}
	off := d.next.PixOffset(r.Min.X, r.Min.Y)
	if err := d.writeRect(r, d.next.Pix[off:], d.next.Stride); err != nil {
		return d.fail("draw", err)
	}
	d.copyRect(d.last, r, d.next.Pix[off:], d.next.Stride)
	d.lastValid = true
	return nil
}

// calculateDiff returns the bounding rectangle of the pixels that differ
// between the shadow frames, or an empty rectangle.
func (d *Dev) calculateDiff() image.Rectangle {
	width, height := d.rect.Dx(), d.rect.Dy()
	stride := d.next.Stride

	minCol, maxCol := width, -1
	minRow, maxRow := height, -1
	for y := 0; y < height; y++ {
		row := y * stride
		prev, cur := d.last.Pix[row:row+width], d.next.Pix[row:row+width]
		if slices.Equal(prev, cur) {
			continue
		}
		minRow = min(minRow, y)
		maxRow = y
		for x := range cur {
			if prev[x] != cur[x] {
				minCol = min(minCol, x)
				break
			}
		}
		for x := width - 1; x >= 0; x-- {
			if prev[x] != cur[x] {
				maxCol = max(maxCol, x)
				break
			}
		}
	}
	if maxRow < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minCol, minRow, maxCol+1, maxRow+1).Add(d.rect.Min)
}

// remember records pixels sent outside of Draw in the shadow frames.
func (d *Dev) remember(r image.Rectangle, pix []uint16, stride int) {
	if d.next == nil || !d.lastValid {
		return
	}
	d.copyRect(d.next, r, pix, stride)
	d.copyRect(d.last, r, pix, stride)
}

func (d *Dev) copyRect(dst *image565.Image, r image.Rectangle, pix []uint16, stride int) {
	w := r.Dx()
	for y := 0; y < r.Dy(); y++ {
		copy(dst.Row(r.Min.Y+y, r.Min.X, r.Max.X), pix[y*stride:y*stride+w])
	}
}

// Clear fills the whole panel with c.
func (d *Dev) Clear(c image565.Color) error {
	if !d.initialized {
		return ErrHalted
	}
	w := d.rect.Dx()
	if len(d.line) != w || d.lineColor != c {
		d.line = slices.Grow(d.line[:0], w)[:w]
		for i := range d.line {
			d.line[i] = uint16(c)
		}
		d.lineColor = c
	}
	if err := d.setWindow(d.rect); err != nil {
		return d.fail("clear", err)
	}
	for y := 0; y < d.rect.Dy(); y++ {
		if err := d.sendPixels(d.line); err != nil {
			return d.fail("clear", err)
		}
	}
	if d.next != nil && d.lastValid {
		d.next.Fill(c)
		d.last.Fill(c)
	}
	return nil
}

// writeRect sends the pixels of r, stride words apart, to the panel.
func (d *Dev) writeRect(r image.Rectangle, pix []uint16, stride int) error {
	if err := d.setWindow(r); err != nil {
		return err
	}
	w, h := r.Dx(), r.Dy()
	if stride == w {
		return d.sendPixels(pix[:w*h])
	}
	for y := 0; y < h; y++ {
		if err := d.sendPixels(pix[y*stride : y*stride+w]); err != nil {
			return err
		}
	}
	return nil
}

// setWindow sets the addressable window to r and starts a memory write.
func (d *Dev) setWindow(r image.Rectangle) error {
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	if err := d.sendCommand(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdPASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return d.sendCommand(cmdRAMWR)
}

// sendCommand sends a command byte followed by its parameters.
func (d *Dev) sendCommand(cmd byte, params ...byte) error {
	if err := d.ensureCommandMode(); err != nil {
		return err
	}
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.bus.Write([]byte{cmd}); err != nil {
		return fmt.Errorf("command %#02x: %w", cmd, err)
	}
	if len(params) == 0 {
		return nil
	}
	return d.sendData(params)
}

// sendData sends parameter bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.bus.Write(data)
}

// sendPixels streams pixel words after a memory write command.
func (d *Dev) sendPixels(pix []uint16) error {
	if err := d.ensurePixelMode(); err != nil {
		return err
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.bus.Write16(pix)
}

// ensureCommandMode switches the bus to 8 bit words unless it already is.
func (d *Dev) ensureCommandMode() error {
	if !d.wide {
		return nil
	}
	if err := d.bus.SetWordSize(8); err != nil {
		return err
	}
	d.wide = false
	return nil
}

// ensurePixelMode switches the bus to 16 bit words unless it already is.
func (d *Dev) ensurePixelMode() error {
	if d.wide {
		return nil
	}
	if err := d.bus.SetWordSize(16); err != nil {
		return err
	}
	d.wide = true
	return nil
}

// fail logs a failed operation and wraps its error.
func (d *Dev) fail(op string, err error) error {
	Logger().Warn("ili9341: "+op+" failed", "dev", d.String(), "err", err)
	return fmt.Errorf("ili9341: %s: %w", op, err)
}
