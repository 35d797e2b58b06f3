package contracts

import "time"

// Record is one reference-data row inside a snapshot. Snapshots may be
// heterogeneous when several universes share one ingestion pipeline; a
// consumer filters down to the record type it expects and silently skips
// the rest.
type Record interface {
	RecordSymbol() Symbol
}

// Snapshot is a batch of reference-data records valid as of a UTC instant.
// Records are ordered by symbol so that repeated evaluations see a stable
// input.
type Snapshot struct {
	Time    time.Time `json:"time"`
	Records []Record  `json:"records"`
}

// NewSnapshot builds a snapshot from fundamental records.
func NewSnapshot(utc time.Time, records []Fundamental) *Snapshot {
	snap := &Snapshot{
		Time:    utc,
		Records: make([]Record, 0, len(records)),
	}
	for _, rec := range records {
		snap.Records = append(snap.Records, rec)
	}
	return snap
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Records)
}
