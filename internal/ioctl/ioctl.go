// Package ioctl encodes and issues the ioctl system calls used by the spidev and fbdev drivers.
package ioctl

import (
	"fmt"
	"reflect"
	"syscall"
)

// Mode is the direction of an ioctl transfer.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl.
type Command uintptr

// Mode returns the transfer direction encoded in c.
func (c Command) Mode() Mode {
	return Mode(c >> 30 & 0x03)
}

// Size returns the argument size encoded in c.
func (c Command) Size() uint16 {
	return uint16(c >> 16 & 0x3fff)
}

func (c Command) String() string {
	var dir string
	if c.Mode()&Write != 0 {
		dir += " write"
	}
	if c.Mode()&Read != 0 {
		dir += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", dir, c.Size(), uintptr(c&0xffff))
}

// Error is a failed ioctl call.
type Error struct {
	Command Command
	Errno   syscall.Errno
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", err.Command, err.Errno)
}

func (err *Error) Unwrap() error {
	return err.Errno
}

// Do issues command with a pointer argument; a nil ptr passes 0.
func Do(fd uintptr, command Command, ptr any) error {
	var p uintptr
	if ptr != nil {
		p = reflect.ValueOf(ptr).Pointer()
	}
	return Call(fd, uintptr(command), p)
}

// Call issues a plain ioctl system call.
func Call(fd, command, arg uintptr) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, command, arg); errno != 0 {
		return &Error{Command: Command(command), Errno: errno}
	}
	return nil
}

// Encode an ioctl command.
func Encode(mode Mode, size uint16, cmd uintptr) Command {
	return Command(mode)<<30 | Command(size&0x3fff)<<16 | Command(cmd)
}

// Pointer encodes an ioctl command whose argument is the value ref points to.
func Pointer(mode Mode, ref any, cmd uintptr) Command {
	size := uint16(reflect.TypeOf(ref).Elem().Size())
	return Encode(mode, size, cmd)
}
