package wavio

import (
	"io"

	"codeberg.org/go-mmap/mmap"
)

// OpenMmap memory-maps path and opens it as a Reader that reads from
// the mapped memory instead of a buffered file read. ReadChunk still
// copies each read out of the mapping and converts it to float64
// samples, as with Open. The caller must Close the returned
// io.Closer once done with the Reader to unmap the file.
func OpenMmap(path string) (*Reader, io.Closer, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}
	sr := io.NewSectionReader(f, 0, int64(f.Len()))
	rd, err := Open(sr)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return rd, f, nil
}
