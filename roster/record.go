package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/katalvlaran/seatplan/engine"
)

var (
	// ErrInvalidFormat indicates input that does not follow the layout.
	ErrInvalidFormat = errors.New("roster: invalid format")

	// ErrUnsupportedFormat indicates a file extension with no loader.
	ErrUnsupportedFormat = errors.New("roster: unsupported format")

	// ErrInvalidRecord indicates a record that parsed but failed validation.
	ErrInvalidRecord = errors.New("roster: invalid record")
)

var validate = validator.New()

// Record is one input record.
type Record struct {
	People   []string    `yaml:"people" validate:"required,min=1,unique,dive,required"`
	Together [][2]string `yaml:"together,omitempty" validate:"dive,dive,required"`
	Apart    [][2]string `yaml:"apart,omitempty" validate:"dive,dive,required"`
	Capacity int         `yaml:"capacity,omitempty" validate:"gte=1,lte=1048576"` // allocate.MaxSeats
	Tables   int         `yaml:"tables,omitempty" validate:"gte=0,lte=65536"`     // allocate.MaxTables
}

// Validate checks the record's shape: people present and unique, no blank
// pair members, capacity and tables within the allocator's layout bounds,
// and no more tables than people. Pair membership and
// together/apart contradictions are left to the engine.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if r.Tables > max(len(r.People), 1) {
		return fmt.Errorf("%w: %d tables for %d people", ErrInvalidRecord, r.Tables, len(r.People))
	}

	return nil
}

// Request converts the record for engine.Run.
func (r Record) Request() engine.Request {
	return engine.Request{
		People:   r.People,
		Together: r.Together,
		Apart:    r.Apart,
		Capacity: r.Capacity,
		Tables:   r.Tables,
	}
}

// normalize trims every name and drops blank people entries.
func (r *Record) normalize() {
	r.People = lo.FilterMap(r.People, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	trim := func(p [2]string, _ int) [2]string {
		return [2]string{strings.TrimSpace(p[0]), strings.TrimSpace(p[1])}
	}
	r.Together = lo.Map(r.Together, trim)
	r.Apart = lo.Map(r.Apart, trim)
}
