// Package power turns the device off.
package power

import "errors"

// Controller powers the device off.
type Controller interface {
	// PowerOff cuts power. On real hardware it does not return on success.
	PowerOff() error
}

// ErrExit is returned by Exit to signal the caller to stop the process
// instead of cutting power.
var ErrExit = errors.New("power: exit requested")

// Exit is a Controller for the desktop simulator: it never cuts power.
type Exit struct{}

// PowerOff returns ErrExit.
func (Exit) PowerOff() error {
	return ErrExit
}

// Fake records power-off calls.
type Fake struct {
	// Calls counts PowerOff calls.
	Calls int

	// Error, if set, will be returned by PowerOff.
	Error error
}

// PowerOff records the call.
func (f *Fake) PowerOff() error {
	f.Calls++
	return f.Error
}
