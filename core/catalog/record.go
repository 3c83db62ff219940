package catalog

import "fmt"

// Record is a catalog entity identified by a stable, non-zero id.
type Record interface {
	RecordID() int
}

// InvalidDataError is returned when a collection cannot be loaded because of a missing or duplicate id.
type InvalidDataError struct {
	Index  int
	ID     int
	Reason string
}

func (err *InvalidDataError) Error() string {
	if err.ID == 0 {
		return fmt.Sprintf("invalid record at index %d: %s", err.Index, err.Reason)
	}
	return fmt.Sprintf("invalid record at index %d (id %d): %s", err.Index, err.ID, err.Reason)
}

func checkIDs[R Record](records []R) error {
	seen := make(map[int]struct{}, len(records))
	for i, rec := range records {
		id := rec.RecordID()
		if id == 0 {
			return &InvalidDataError{Index: i, Reason: "missing id"}
		}
		if _, dup := seen[id]; dup {
			return &InvalidDataError{Index: i, ID: id, Reason: "duplicate id"}
		}
		seen[id] = struct{}{}
	}
	return nil
}
