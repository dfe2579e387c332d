// Package ili9341 controls an ILI9341 240×320 TFT display via SPI.
//
// The ILI9341 is a 262K color TFT controller. This driver runs it in 16 bit
// RGB565 mode and implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 240×320 pixels, portrait or landscape (320×240)
// - 16 bit RGB565 color, see the image565 package
// - Sleep mode with the backlight driven off
// - PWM backlight control
// - Selectable gamma curves and display inversion
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	SDI/MOSI    → SPI Data (MOSI)
//	SDO/MISO    → SPI Data (MISO), unused
//	CS          → SPI Chip Select
//	DC          → GPIO (any available pin)
//	RESET       → Optional: GPIO for hardware reset
//	LED         → Optional: PWM capable GPIO for the backlight
//
// # Bus Modes
//
// Commands and their parameters are 8 bit words, pixel data is streamed as
// 16 bit words. The driver tracks which word size the bus is in and only
// switches when the next transfer needs the other one, so a frame costs one
// switch to command mode for the address window and one back to pixel mode.
// After Init the bus is in pixel mode.
//
// On periph.io hosts the switch is emulated: the SPI connection stays at 8
// bits per word, a switch sends nothing, and pixel words are sent most
// significant byte first. Other transports, including ones that change the
// word size in hardware, can be plugged in through the Bus interface and New.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ili9341"
//		"periph.io/x/devices/v3/ili9341/image565"
//		"periph.io/x/devices/v3/ili9341/raster"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		defer p.Close()
//
//		dev, _ := ili9341.NewSPI(p, ili9341.Pins{
//			DC:        gpioreg.ByName("GPIO25"),
//			RST:       gpioreg.ByName("GPIO24"),
//			Backlight: gpioreg.ByName("GPIO18"),
//		}, nil)
//		defer dev.Halt()
//
//		img, _ := dev.NewBuffer()
//		img.Fill(image565.RGB(0, 0, 64))
//		raster.Circle(img, 120, 160, 50, image565.RGB(255, 200, 0), true)
//		raster.Text(img, "Hello", 90, 260, image565.RGB(255, 255, 255), image565.Transparent)
//
//		dev.DrawBuffer(0, 0, img)
//	}
//
// # Drawing Modes
//
// DrawBuffer and DrawRaw send a block of pixels to any position on the panel.
// They are the fastest path: one address window and a single burst.
//
// Draw accepts any image.Image. Sources other than a full-panel
// *image565.Image are composed into a shadow frame and only the bounding
// rectangle of changed pixels is sent.
//
// # Errors
//
// Bus and pin failures are returned wrapped with the "ili9341:" prefix and
// logged at warn level through the logger set with SetLogger. They leave the
// frame partly drawn; the next frame can be sent as usual.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
package ili9341
