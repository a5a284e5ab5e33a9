package sstable

import "os"

// FileObject owns an open file handle backing one SSTable plus its cached
// size, avoiding a stat() on every read.
type FileObject struct {
	f    *os.File
	size uint64
}

// CreateFile writes data to path in one shot: create, write, close. The
// file is guaranteed fully written once CreateFile returns without error;
// it makes no stronger durability promise than that (no fsync).
func CreateFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return nil
}

// OpenFile opens an existing file read-only; it never truncates or
// creates. Callers that want a fresh file should use CreateFile instead.
func OpenFile(path string) (*FileObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileObject{f: f, size: uint64(info.Size())}, nil
}

// Size reports the file's length in bytes.
func (fo *FileObject) Size() uint64 { return fo.size }

// Read returns the length bytes starting at offset.
func (fo *FileObject) Read(offset, length uint64) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := fo.f.ReadAt(buf, int64(offset)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close releases the underlying file handle.
func (fo *FileObject) Close() error { return fo.f.Close() }
