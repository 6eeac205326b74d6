// Package config loads scenario files that describe a level, and the
// environment defaults of the command line tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/cropper/space"
)

// A Scenario describes a level and how long to run it.
type Scenario struct {
	Name       string      `yaml:"name"`
	Ticks      uint64      `yaml:"ticks"`
	Containers []Container `yaml:"containers"`
	Hoppers    []Hopper    `yaml:"hoppers"`
	Entities   []Entity    `yaml:"entities"`
}

// A Container is a plain or side-restricted block with slots.
type Container struct {
	Name  string          `yaml:"name"`
	Pos   []int           `yaml:"pos"`
	Slots int             `yaml:"slots"`
	Faces map[string]Face `yaml:"faces"`
	Items []Stack         `yaml:"items"`
}

// A Face configures one side of a side-restricted container.
type Face struct {
	Slots   []int `yaml:"slots"`
	Insert  bool  `yaml:"insert"`
	Extract bool  `yaml:"extract"`
}

// A Hopper is a transfer node.
type Hopper struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Pos         []int   `yaml:"pos"`
	Facing      string  `yaml:"facing"`
	Powered     bool    `yaml:"powered"`
	Cooldown    *int    `yaml:"cooldown"`
	Items       []Stack `yaml:"items"`
}

// A Stack fills one slot.
type Stack struct {
	Slot     int    `yaml:"slot"`
	Item     string `yaml:"item"`
	Count    int    `yaml:"count"`
	MaxCount int    `yaml:"max_count"`
	Variant  int    `yaml:"variant"`
	Tag      string `yaml:"tag"`
}

// An Entity is a loose stack dropped into the level before the first tick.
type Entity struct {
	Pos      []float64 `yaml:"pos"`
	Item     string    `yaml:"item"`
	Count    int       `yaml:"count"`
	MaxCount int       `yaml:"max_count"`
}

// Load reads and validates a scenario file.
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}

	return s, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks everything that would otherwise panic while building.
func (s *Scenario) Validate() error {
	var errs []error

	names := make(map[string]bool)
	blocks := make(map[space.Pos]string)

	place := func(kind, name string, pos []int) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s without a name", kind))
		}

		if names[name] {
			errs = append(errs, fmt.Errorf("duplicate name %q", name))
		}
		names[name] = true

		p, err := blockPos(pos)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", kind, name, err))
			return
		}

		if other, taken := blocks[p]; taken {
			errs = append(errs, fmt.Errorf("%s %q: block %s is taken by %q",
				kind, name, p, other))
		}
		blocks[p] = name
	}

	for _, c := range s.Containers {
		place("container", c.Name, c.Pos)
		errs = append(errs, c.validate()...)
	}

	for _, h := range s.Hoppers {
		place("hopper", h.Name, h.Pos)
		errs = append(errs, h.validate()...)
	}

	for i, e := range s.Entities {
		if len(e.Pos) != 3 {
			errs = append(errs, fmt.Errorf("entity %d: pos needs 3 values", i))
		}

		if e.Item == "" || e.Count <= 0 {
			errs = append(errs, fmt.Errorf("entity %d: needs an item and a count", i))
		}
	}

	return errors.Join(errs...)
}

func (c Container) validate() []error {
	var errs []error

	if c.Slots <= 0 {
		errs = append(errs, fmt.Errorf("container %q: slots must be positive",
			c.Name))
	}

	for side, f := range c.Faces {
		if _, ok := space.ParseDirection(side); !ok {
			errs = append(errs, fmt.Errorf("container %q: unknown side %q",
				c.Name, side))
		}

		for _, slot := range f.Slots {
			if slot < 0 || slot >= c.Slots {
				errs = append(errs, fmt.Errorf(
					"container %q: face %s names slot %d", c.Name, side, slot))
			}
		}
	}

	return append(errs, validateStacks(c.Name, c.Slots, c.Items)...)
}

func (h Hopper) validate() []error {
	var errs []error

	facing, ok := space.ParseDirection(h.facingName())
	if !ok || facing == space.Up || facing == space.None {
		errs = append(errs, fmt.Errorf("hopper %q: cannot face %q",
			h.Name, h.Facing))
	}

	return append(errs, validateStacks(h.Name, numHopperSlots, h.Items)...)
}

func (h Hopper) facingName() string {
	if h.Facing == "" {
		return "down"
	}

	return h.Facing
}

func validateStacks(owner string, numSlots int, stacks []Stack) []error {
	var errs []error

	for _, st := range stacks {
		if st.Slot < 0 || st.Slot >= numSlots {
			errs = append(errs, fmt.Errorf("%q: no slot %d", owner, st.Slot))
		}

		if st.Item == "" || st.Count <= 0 {
			errs = append(errs, fmt.Errorf(
				"%q: slot %d needs an item and a count", owner, st.Slot))
		}
	}

	return errs
}

func blockPos(v []int) (space.Pos, error) {
	if len(v) != 3 {
		return space.Pos{}, errors.New("pos needs 3 values")
	}

	return space.Pos{X: v[0], Y: v[1], Z: v[2]}, nil
}
