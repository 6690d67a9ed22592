package property

import "fmt"

// Descriptor is the normalized unit a library property resolves to.
type Descriptor struct {
	Path   string `json:"path" yaml:"path"`
	Expose string `json:"expose" yaml:"expose"`
}

// Kind reports KindRecord; a descriptor is an object that is already shaped.
func (Descriptor) Kind() Kind { return KindRecord }
func (Descriptor) isValue()   {}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s=%s", d.Expose, d.Path)
}

// AsDescriptor reads a descriptor out of an object-shaped value. Records must
// carry a string "path"; "expose" is optional and copied as-is.
func AsDescriptor(v Value) (Descriptor, error) {
	switch t := v.(type) {
	case Descriptor:
		return t, nil
	case Record:
		path, ok := t["path"].(string)
		if !ok || path == "" {
			return Descriptor{}, fmt.Errorf("record has no string \"path\" field")
		}
		d := Descriptor{Path: path}
		if expose, present := t["expose"]; present {
			s, ok := expose.(string)
			if !ok {
				return Descriptor{}, fmt.Errorf("record field \"expose\" must be a string, got %T", expose)
			}
			d.Expose = s
		}
		return d, nil
	default:
		return Descriptor{}, fmt.Errorf("%s value is not descriptor-shaped", KindOf(v))
	}
}
