//go:build linux

package power

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// System powers off the machine through the reboot syscall.
// Requires CAP_SYS_BOOT.
type System struct{}

// PowerOff flushes filesystems and halts the machine with power-off.
func (System) PowerOff() error {
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		return fmt.Errorf("reboot syscall: %w", err)
	}
	return nil
}
