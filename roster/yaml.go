package roster

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes a record such as
//
//	people: [Ann, Bob, Cid]
//	together: [[Ann, Bob]]
//	apart: [[Bob, Cid]]
//	capacity: 2
//
// Unknown keys are rejected. The record is normalized but not validated.
func LoadYAML(r io.Reader) (Record, error) {
	var rec Record
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, fmt.Errorf("%w: empty document", ErrInvalidFormat)
		}
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	rec.normalize()

	return rec, nil
}
