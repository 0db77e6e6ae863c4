package packet

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/danmuck/mcwire/internal/protocol"
	"github.com/danmuck/mcwire/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

// Key addresses one packet shape on the wire.
type Key struct {
	State     State
	Direction Direction
	ID        int32
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/0x%02x", k.State, k.Direction, k.ID)
}

// Descriptor binds a key to a packet name and constructor.
type Descriptor struct {
	Key  Key
	Name string
	New  func() Packet
}

type lane struct {
	state State
	dir   Direction
}

// Registry resolves packets by key and keys by packet type.
// It is immutable after NewRegistry and safe for concurrent use.
type Registry struct {
	byKey  map[Key]Descriptor
	byType map[reflect.Type]Key
	lanes  map[lane][]Descriptor
}

// NewRegistry validates descs and builds a registry. Keys, names and packet
// types must be unique, and each (state, direction) must use ids 0..n-1.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		byKey:  make(map[Key]Descriptor, len(descs)),
		byType: make(map[reflect.Type]Key, len(descs)),
		lanes:  make(map[lane][]Descriptor),
	}
	names := make(map[string]Key, len(descs))
	for _, d := range descs {
		if err := r.add(d, names); err != nil {
			log.Error().Err(err).Msg("packet registry rejected descriptor")
			return nil, err
		}
	}
	for l, entries := range r.lanes {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key.ID < entries[j].Key.ID })
		for i, d := range entries {
			if d.Key.ID != int32(i) {
				err := &RegistryError{
					Key:    Key{State: l.state, Direction: l.dir, ID: int32(i)},
					Reason: "missing id, ids must be contiguous from 0",
				}
				log.Error().Err(err).Msg("packet registry rejected table")
				return nil, err
			}
		}
	}
	log.Debug().Int("packets", len(r.byKey)).Int("lanes", len(r.lanes)).Msg("packet registry validated")
	return r, nil
}

func (r *Registry) add(d Descriptor, names map[string]Key) error {
	fail := func(reason string) error {
		return &RegistryError{Key: d.Key, Name: d.Name, Reason: reason}
	}
	if d.Name == "" {
		return fail("empty name")
	}
	if d.Key.ID < 0 {
		return fail("negative id")
	}
	if d.New == nil {
		return fail("nil constructor")
	}
	p := d.New()
	if isNil(p) {
		return fail("constructor returned nil")
	}
	if _, dup := r.byKey[d.Key]; dup {
		return fail("duplicate key")
	}
	if prev, dup := names[d.Name]; dup {
		return fail(fmt.Sprintf("duplicate name, already used by %s", prev))
	}
	t := reflect.TypeOf(p)
	if prev, dup := r.byType[t]; dup {
		return fail(fmt.Sprintf("duplicate type %s, already used by %s", t, prev))
	}
	names[d.Name] = d.Key
	r.byKey[d.Key] = d
	r.byType[t] = d.Key
	l := lane{state: d.Key.State, dir: d.Key.Direction}
	r.lanes[l] = append(r.lanes[l], d)
	return nil
}

func isNil(p Packet) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(Catalogue()...)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the registry built from Catalogue.
func Default() *Registry {
	return defaultRegistry()
}

func (r *Registry) Lookup(state State, dir Direction, id int32) (Descriptor, bool) {
	d, ok := r.byKey[Key{State: state, Direction: dir, ID: id}]
	return d, ok
}

// KeyOf finds the key p is registered under by its Go type.
func (r *Registry) KeyOf(p Packet) (Key, bool) {
	if p == nil {
		return Key{}, false
	}
	k, ok := r.byType[reflect.TypeOf(p)]
	return k, ok
}

// Entries lists the descriptors of one state and direction ordered by id.
func (r *Registry) Entries(state State, dir Direction) []Descriptor {
	entries := r.lanes[lane{state: state, dir: dir}]
	out := make([]Descriptor, len(entries))
	copy(out, entries)
	return out
}

// Decode builds the packet registered under (state, dir, id) from body.
// The whole body must be consumed.
func (r *Registry) Decode(state State, dir Direction, id int32, body []byte) (Packet, error) {
	d, ok := r.Lookup(state, dir, id)
	if !ok {
		return nil, &UnknownPacketError{Key: Key{State: state, Direction: dir, ID: id}}
	}
	p := d.New()
	src := bytes.NewReader(body)
	if err := p.Decode(src); err != nil {
		return nil, &DecodeError{Key: d.Key, Name: d.Name, Err: err}
	}
	if src.Len() > 0 {
		return nil, &DecodeError{
			Key:  d.Key,
			Name: d.Name,
			Err:  fmt.Errorf("%w: %d bytes", ErrTrailingBytes, src.Len()),
		}
	}
	return p, nil
}

// Encode returns the key and body bytes of p.
func (r *Registry) Encode(p Packet) (Key, []byte, error) {
	k, ok := r.KeyOf(p)
	if !ok {
		return Key{}, nil, fmt.Errorf("%w: %T", ErrUnregisteredPacket, p)
	}
	body, err := protocol.Marshal(p)
	if err != nil {
		return Key{}, nil, fmt.Errorf("packet: encode %s: %w", k, err)
	}
	return k, body, nil
}

func (r *Registry) DecodeFrame(state State, dir Direction, f frame.Frame) (Packet, error) {
	return r.Decode(state, dir, f.ID, f.Body)
}

func (r *Registry) EncodeFrame(p Packet) (frame.Frame, error) {
	k, body, err := r.Encode(p)
	if err != nil {
		return frame.Frame{}, err
	}
	return frame.Frame{ID: k.ID, Body: body}, nil
}
