package sim

import "sort"

// ArrivalIndex groups process records by arrival time.
// It is built once per simulation and shared read-only by every policy run.
type ArrivalIndex struct {
	byTime  map[int][]ProcessRecord
	times   []int // distinct arrival times, ascending
	records []ProcessRecord
}

// BuildArrivalIndex groups records by ArrivalTime, preserving input order within a group.
func BuildArrivalIndex(records []ProcessRecord) *ArrivalIndex {
	idx := &ArrivalIndex{
		byTime:  make(map[int][]ProcessRecord),
		records: make([]ProcessRecord, len(records)),
	}
	copy(idx.records, records)
	for _, r := range idx.records {
		if _, ok := idx.byTime[r.ArrivalTime]; !ok {
			idx.times = append(idx.times, r.ArrivalTime)
		}
		idx.byTime[r.ArrivalTime] = append(idx.byTime[r.ArrivalTime], r)
	}
	sort.Ints(idx.times)
	return idx
}

// At returns the records arriving exactly at tick t (nil if none).
// Callers must not modify the returned slice.
func (idx *ArrivalIndex) At(t int) []ProcessRecord {
	return idx.byTime[t]
}

// LastArrival returns the latest arrival time, or -1 for an empty index.
func (idx *ArrivalIndex) LastArrival() int {
	if len(idx.times) == 0 {
		return -1
	}
	return idx.times[len(idx.times)-1]
}

// Times returns the distinct arrival times in ascending order.
func (idx *ArrivalIndex) Times() []int {
	return append([]int(nil), idx.times...)
}

func (idx *ArrivalIndex) Len() int {
	return len(idx.records)
}

func (idx *ArrivalIndex) Empty() bool {
	return len(idx.records) == 0
}

// Records returns a copy of the indexed records in input order.
func (idx *ArrivalIndex) Records() []ProcessRecord {
	return append([]ProcessRecord(nil), idx.records...)
}
