// Package gpio provides the encoder's input lines with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/rotary-encoder/rotary"

// Output is a digital output line. *gpiocdev.Line satisfies it.
type Output interface {
	SetValue(value int) error
}

// Lines holds the encoder's lines.
// SW is nil when the encoder has no push switch wired, LED when no
// indicator is fitted.
type Lines struct {
	CLK rotary.Input
	DT  rotary.Input
	SW  rotary.Input
	LED Output

	closer func() error
}

// Close releases GPIO resources.
func (l *Lines) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer()
}

// Default pin definitions (BCM numbering)
const (
	DefaultChip   = "gpiochip0"
	DefaultPinCLK = 17
	DefaultPinDT  = 27
	DefaultPinSW  = 22
	DefaultPinLED = -1
)
