package file

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("zero reader: negative offset")

// zeroReader yields size zero bytes. It implements io.Seeker so the AWS SDK
// can hash the payload and rewind it for retries.
type zeroReader struct {
	size int64
	off  int64
}

func newZeroReader(size int64) *zeroReader {
	return &zeroReader{size: max(size, 0)}
}

func (z *zeroReader) Read(p []byte) (int, error) {
	if z.off >= z.size {
		return 0, io.EOF
	}
	n := int(min(int64(len(p)), z.size-z.off))
	clear(p[:n])
	z.off += int64(n)
	return n, nil
}

func (z *zeroReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = z.off + offset
	case io.SeekEnd:
		abs = z.size + offset
	default:
		return 0, errors.New("zero reader: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	z.off = abs
	return abs, nil
}
