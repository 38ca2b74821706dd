// Package sysio provides unbuffered integer and character I/O for compiled programs.
package sysio

import (
	"errors"
	"fmt"
	"io"
)

// ErrCapacityExceeded is returned when an array count does not fit the caller's buffer.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// intBufSize holds the sign and digits of any 64-bit integer.
const intBufSize = 21

// IO reads and writes values directly against the underlying streams.
// The only buffering is a single pushback character used by ReadInt.
type IO struct {
	in  io.Reader
	out io.Writer

	last      byte
	lastValid bool

	err error
}

// New returns an IO reading from in and writing to out.
func New(in io.Reader, out io.Writer) *IO {
	return &IO{in: in, out: out}
}

// Err returns the first read or write failure, including io.EOF.
func (s *IO) Err() error {
	return s.err
}

func (s *IO) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// ReadChar returns the pushed back character if present, otherwise reads one byte.
// A failed or empty read yields 0.
func (s *IO) ReadChar() byte {
	if s.lastValid {
		s.lastValid = false
		return s.last
	}
	var b [1]byte
	n, err := s.in.Read(b[:])
	if n <= 0 {
		if err == nil {
			err = io.EOF
		}
		s.setErr(err)
		return 0
	}
	return b[0]
}

func (s *IO) unread(c byte) {
	s.last = c
	s.lastValid = true
}

// ReadInt reads an optionally negative decimal integer after skipping whitespace.
// The first character after the digits is kept for the next read.
func (s *IO) ReadInt() int32 {
	c := s.ReadChar()
	for isSpace(c) {
		c = s.ReadChar()
	}
	neg := false
	if c == '-' {
		neg = true
		c = s.ReadChar()
	}
	var num int32
	for ; isDigit(c); c = s.ReadChar() {
		num = num*10 + int32(c-'0')
	}
	s.unread(c)
	if neg {
		return -num
	}
	return num
}

// ReadArray reads a count n followed by n integers into dst and returns n.
func (s *IO) ReadArray(dst []int32) (int32, error) {
	n := s.ReadInt()
	if int64(n) > int64(len(dst)) {
		return n, fmt.Errorf("%w: read %d elements into buffer of %d", ErrCapacityExceeded, n, len(dst))
	}
	for i := int32(0); i < n; i++ {
		dst[i] = s.ReadInt()
	}
	return n, nil
}

// WriteChar writes exactly one byte.
func (s *IO) WriteChar(c byte) error {
	b := [1]byte{c}
	return s.write(b[:])
}

// WriteInt writes the decimal form of v in a single write.
func (s *IO) WriteInt(v int32) error {
	var buf [intBufSize]byte
	return s.write(FormatInt(&buf, int64(v)))
}

// WriteArray writes "<n>:" followed by " <a[i]>" for each element and a newline.
func (s *IO) WriteArray(n int32, a []int32) error {
	if int64(n) > int64(len(a)) {
		return fmt.Errorf("%w: write %d elements from buffer of %d", ErrCapacityExceeded, n, len(a))
	}
	if err := s.WriteInt(n); err != nil {
		return err
	}
	if err := s.WriteChar(':'); err != nil {
		return err
	}
	for i := int32(0); i < n; i++ {
		if err := s.WriteChar(' '); err != nil {
			return err
		}
		if err := s.WriteInt(a[i]); err != nil {
			return err
		}
	}
	return s.WriteChar('\n')
}

func (s *IO) write(p []byte) error {
	if _, err := s.out.Write(p); err != nil {
		s.setErr(err)
		return err
	}
	return nil
}

// FormatInt renders v into the tail of buf and returns the used part.
func FormatInt(buf *[intBufSize]byte, v int64) []byte {
	i := len(buf)
	if v == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	neg := v < 0
	// Work on the negative range so the minimum value needs no special case.
	if !neg {
		v = -v
	}
	for v != 0 {
		i--
		buf[i] = byte('0' - v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\f', '\n', '\r', '\t', '\v':
		return true
	}
	return false
}
