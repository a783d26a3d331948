package pgcast

import (
	"github.com/pkg/errors"
)

// CoderRegistry is a static catalog of coder templates indexed by wire format,
// direction, and type name. It is independent of any live connection; a
// registry seeds any number of CoderMapsBundle builds.
//
// The registry is not internally synchronized. Registration and aliasing must
// not run concurrently with reads or with a bundle build.
type CoderRegistry struct {
	// buckets[format][direction] maps type name to coder template.
	buckets [2][2]map[string]*Coder
}

// NewRegistry returns an empty registry.
func NewRegistry() *CoderRegistry {
	r := &CoderRegistry{}
	for format := range r.buckets {
		for dir := range r.buckets[format] {
			r.buckets[format][dir] = make(map[string]*Coder)
		}
	}
	return r
}

// Register inserts coder into the encoder bucket if it has an encode
// capability and into the decoder bucket if it has a decode capability, keyed
// by its name under its format.
func (r *CoderRegistry) Register(coder *Coder) error {
	if coder.Name == "" {
		return errors.New("cannot register a coder with no name")
	}
	if err := validateFormat(coder.Format); err != nil {
		return err
	}
	if !coder.CanEncode() && !coder.CanDecode() {
		return errors.Errorf("coder %q has neither encode nor decode capability", coder.Name)
	}

	if coder.CanEncode() {
		r.buckets[coder.Format][EncodeDirection][coder.Name] = coder
	}
	if coder.CanDecode() {
		r.buckets[coder.Format][DecodeDirection][coder.Name] = coder
	}
	return nil
}

// RegisterType constructs and registers a coder named name for the given
// format. Either function may be nil, in which case no entry is made for that
// direction.
func (r *CoderRegistry) RegisterType(format int16, name string, encode EncodeFunc, decode DecodeFunc) error {
	if encode == nil && decode == nil {
		return errors.Errorf("cannot register type %q without an encode or decode function", name)
	}
	return r.Register(&Coder{Name: name, Format: format, Encode: encode, Decode: decode})
}

// AliasType registers the coder known under oldName under newName as well,
// independently for each direction. The alias holds the coder reference
// captured at this call; re-registering oldName later does not affect it. If
// oldName has no entry for a direction, any existing newName entry for that
// direction is removed, so that the two names always agree.
func (r *CoderRegistry) AliasType(format int16, newName, oldName string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	for dir := range r.buckets[format] {
		bucket := r.buckets[format][dir]
		if coder, ok := bucket[oldName]; ok {
			bucket[newName] = coder
		} else {
			delete(bucket, newName)
		}
	}
	return nil
}

// Coders returns the name-to-coder mapping for one format and direction. The
// returned map is the registry's own bucket; callers must not modify it.
func (r *CoderRegistry) Coders(format int16, dir Direction) (map[string]*Coder, error) {
	if err := validateFormat(format); err != nil {
		return nil, err
	}
	if err := validateDirection(dir); err != nil {
		return nil, err
	}
	return r.buckets[format][dir], nil
}
