package dataset

import (
	"strconv"

	"github.com/cespare/xxhash"
)

// Batch is a contiguous slice of the dataset starting at Offset.
type Batch struct {
	Offset  int
	Records []Record
}

func (b Batch) Len() int {
	return len(b.Records)
}

// Checksum fingerprints the batch contents. Null and empty values hash differently.
func (b Batch) Checksum() uint64 {
	h := xxhash.New()
	for _, rec := range b.Records {
		for _, v := range rec.Values {
			if v == nil {
				_, _ = h.Write([]byte{0})
				continue
			}
			_, _ = h.Write([]byte{1})
			_, _ = h.Write([]byte(strconv.Itoa(len(*v))))
			_, _ = h.Write([]byte(*v))
		}
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Partition splits records into contiguous batches of at most size records,
// preserving order. It panics if size < 1.
func Partition(records []Record, size int) []Batch {
	if size < 1 {
		panic("dataset: batch size must be positive")
	}
	if len(records) == 0 {
		return nil
	}

	batches := make([]Batch, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, Batch{Offset: start, Records: records[start:end]})
	}
	return batches
}
