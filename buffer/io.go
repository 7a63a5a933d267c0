package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readChunk is the minimum free space ReadFrom keeps available per read.
const readChunk = 512

// Write appends p, making Buffer an io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString appends s, making Buffer an io.StringWriter.
func (b *Buffer) WriteString(s string) (int, error) {
	if err := b.AppendString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// WriteByte appends c, making Buffer an io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	return b.AppendByte(c)
}

// WriteTo writes the content to w. The buffer is left unchanged.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.length == 0 {
		return 0, nil
	}
	n, err := w.Write(b.data[:b.length])
	if err == nil && n != b.length {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// ReadFrom appends everything read from r until EOF.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if b.Free() < readChunk {
			if err := b.ensure("read", readChunk); err != nil {
				return total, err
			}
		}
		n, err := r.Read(b.data[b.length : len(b.data)-1])
		if n < 0 {
			return total, errors.New("buffer: read: reader returned negative count")
		}
		b.length += n
		total += int64(n)
		b.terminate()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// ReadN appends exactly n bytes from r. On a short read the bytes that did
// arrive are kept and io.ErrUnexpectedEOF is returned.
func (b *Buffer) ReadN(r io.Reader, n int) (int, error) {
	if n < 0 {
		return 0, argError("read", "size must not be negative")
	}
	if n == 0 {
		return 0, nil
	}
	if err := b.ensure("read", n); err != nil {
		return 0, err
	}
	got, err := io.ReadFull(r, b.data[b.length:b.length+n])
	b.length += got
	b.terminate()
	return got, err
}

// LoadFile appends the content of the named file, skipping a leading UTF-8
// byte order mark. A positive limit rejects files larger than limit bytes.
func (b *Buffer) LoadFile(path string, limit int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("buffer: cannot read %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("buffer: cannot read %s: %w", path, err)
	}
	size := int(info.Size())
	if limit > 0 && size > limit {
		return &Error{Op: "load", Value: size, Bound: limit, Msg: "file too large", Err: ErrLimitExceeded}
	}

	tmp := New(b.policy)
	if size > 0 {
		if err := tmp.ensure("load", size); err != nil {
			return err
		}
	}
	if _, err := tmp.ReadFrom(f); err != nil {
		return fmt.Errorf("buffer: cannot read %s: %w", path, err)
	}
	if limit > 0 && tmp.length > limit {
		return &Error{Op: "load", Value: tmp.length, Bound: limit, Msg: "file too large", Err: ErrLimitExceeded}
	}
	content := bytes.TrimPrefix(tmp.Bytes(), utf8BOM)
	return b.Append(content)
}
