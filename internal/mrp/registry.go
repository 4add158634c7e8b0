package mrp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAttributeExists       = errors.New("mrp: attribute type already registered")
	ErrReservedAttributeType = errors.New("mrp: attribute type 0 is reserved")
	ErrInvalidAttributeSpec  = errors.New("mrp: invalid attribute spec")
)

// AttributeSpec describes how one application attribute type is encoded.
type AttributeSpec struct {
	Type          uint8
	Name          string
	FirstValueLen int
	Packing       PackingMode
	// EventCodes maps a packed code to its event. Codes outside the table
	// are rejected as ErrInvalidPackedEvent.
	EventCodes []EventKind
	// FourPacked marks vectors that carry a FourPackedEvents stream after
	// the primary packed events. A four-packed code of 0 is Ignore.
	FourPacked bool
	// Increment advances value in place by one step. Nil leaves every
	// occurrence equal to FirstValue.
	Increment func(value []byte)
}

// Validate checks that spec can be used for decoding.
func (spec AttributeSpec) Validate() error {
	if spec.Type == 0 {
		return ErrReservedAttributeType
	}
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("%w: type %d has no name", ErrInvalidAttributeSpec, spec.Type)
	}
	if spec.FirstValueLen <= 0 || spec.FirstValueLen > 255 {
		return fmt.Errorf("%w: type %d first value length %d", ErrInvalidAttributeSpec, spec.Type, spec.FirstValueLen)
	}
	if !spec.Packing.Valid() {
		return fmt.Errorf("%w: type %d packing %s", ErrInvalidAttributeSpec, spec.Type, spec.Packing)
	}
	if len(spec.EventCodes) == 0 || len(spec.EventCodes) > spec.Packing.Radix() {
		return fmt.Errorf("%w: type %d has %d event codes for %s", ErrInvalidAttributeSpec, spec.Type, len(spec.EventCodes), spec.Packing)
	}
	return nil
}

func (spec AttributeSpec) event(code uint8) (EventKind, bool) {
	if int(code) >= len(spec.EventCodes) {
		return 0, false
	}
	return spec.EventCodes[code], true
}

// Registry stores attribute specs by type. It is built once at startup and
// only read while decoding.
type Registry struct {
	items map[uint8]AttributeSpec
}

// NewRegistry creates an empty attribute-type registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[uint8]AttributeSpec)}
}

// Register adds spec to the registry.
func (r *Registry) Register(spec AttributeSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if _, ok := r.items[spec.Type]; ok {
		return fmt.Errorf("%w: %d", ErrAttributeExists, spec.Type)
	}
	spec.EventCodes = append([]EventKind(nil), spec.EventCodes...)
	r.items[spec.Type] = spec
	return nil
}

// MustRegister is Register for static tables.
func (r *Registry) MustRegister(specs ...AttributeSpec) *Registry {
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	return r
}

// Resolve returns the spec for an attribute type.
func (r *Registry) Resolve(t uint8) (AttributeSpec, bool) {
	spec, ok := r.items[t]
	return spec, ok
}

// Types returns the registered attribute types in ascending order.
func (r *Registry) Types() []uint8 {
	list := make([]uint8, 0, len(r.items))
	for t := range r.items {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i] < list[j]
	})
	return list
}
