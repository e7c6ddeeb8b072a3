package codec

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/spatial"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Version is the current record format version.
const Version byte = 1

// Kind tags the payload of a record.
type Kind byte

const (
	KindActor Kind = iota + 1
	KindMobile
	KindPawn
	KindInput
	KindCoordSet
)

func (k Kind) String() string {
	switch k {
	case KindActor:
		return "actor"
	case KindMobile:
		return "mobile"
	case KindPawn:
		return "pawn"
	case KindInput:
		return "input"
	case KindCoordSet:
		return "coordset"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

var (
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrShortBuffer        = errors.New("short buffer")
	ErrUnexpectedKind     = errors.New("unexpected kind")
)

// Codec encodes and decodes records. Every record starts with a version
// byte and a kind byte. Strings use the configured charset.
type Codec struct {
	enc encoding.Encoding
}

// New creates a codec for a WHATWG charset name such as "utf-8" or "big5".
func New(charset string) (*Codec, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("codec charset %q: %w", charset, err)
	}
	return &Codec{enc: enc}, nil
}

func (c *Codec) writer(k Kind) *Writer {
	w := newWriter(c.enc)
	w.WriteC(Version)
	w.WriteC(byte(k))
	return w
}

// Peek returns the kind of a record without decoding it.
func Peek(b []byte) (Kind, error) {
	if len(b) < 2 {
		return 0, ErrShortBuffer
	}
	if b[0] != Version {
		return 0, fmt.Errorf("version %d: %w", b[0], ErrUnsupportedVersion)
	}
	return Kind(b[1]), nil
}

func (c *Codec) reader(b []byte, want Kind) (*Reader, error) {
	k, err := Peek(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", want, err)
	}
	if k != want {
		return nil, fmt.Errorf("decode %s: got %s: %w", want, k, ErrUnexpectedKind)
	}
	r := newReader(b, c.enc)
	r.off = 2
	return r, nil
}

func finish[T any](v T, r *Reader, k Kind) (T, error) {
	if err := r.Err(); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", k, err)
	}
	return v, nil
}

func writeActor(w *Writer, a *actor.Actor) {
	w.WriteD(a.ID)
	w.WriteS(a.Config)
	w.WriteQ(a.Created)
	w.WriteQ(a.Destroyed)
	w.WriteF(a.Translation[0])
	w.WriteF(a.Translation[1])
	w.WriteF(a.Rotation)
	w.WriteF(a.Radius)
	w.WriteDU(a.Status)
}

func readActor(r *Reader, a *actor.Actor) {
	a.ID = r.ReadD()
	a.Config = r.ReadS()
	a.Created = r.ReadQ()
	a.Destroyed = r.ReadQ()
	a.Translation = mgl64.Vec2{r.ReadF(), r.ReadF()}
	a.Rotation = r.ReadF()
	a.Radius = r.ReadF()
	a.Status = r.ReadDU()
}

func writeMobile(w *Writer, m *actor.Mobile) {
	writeActor(w, &m.Actor)
	w.WriteF(m.Direction)
	w.WriteF(m.Speed)
}

func readMobile(r *Reader, m *actor.Mobile) {
	readActor(r, &m.Actor)
	m.Direction = r.ReadF()
	m.Speed = r.ReadF()
}

func (c *Codec) EncodeActor(a *actor.Actor) []byte {
	w := c.writer(KindActor)
	writeActor(w, a)
	return w.Bytes()
}

func (c *Codec) DecodeActor(b []byte) (*actor.Actor, error) {
	r, err := c.reader(b, KindActor)
	if err != nil {
		return nil, err
	}
	a := &actor.Actor{}
	readActor(r, a)
	return finish(a, r, KindActor)
}

func (c *Codec) EncodeMobile(m *actor.Mobile) []byte {
	w := c.writer(KindMobile)
	writeMobile(w, m)
	return w.Bytes()
}

func (c *Codec) DecodeMobile(b []byte) (*actor.Mobile, error) {
	r, err := c.reader(b, KindMobile)
	if err != nil {
		return nil, err
	}
	m := &actor.Mobile{}
	readMobile(r, m)
	return finish(m, r, KindMobile)
}

func (c *Codec) EncodePawn(p *actor.Pawn) []byte {
	w := c.writer(KindPawn)
	writeMobile(w, &p.Mobile)
	w.WriteD(p.Owner)
	return w.Bytes()
}

func (c *Codec) DecodePawn(b []byte) (*actor.Pawn, error) {
	r, err := c.reader(b, KindPawn)
	if err != nil {
		return nil, err
	}
	p := &actor.Pawn{}
	readMobile(r, &p.Mobile)
	p.Owner = r.ReadD()
	return finish(p, r, KindPawn)
}

func (c *Codec) EncodeInput(f actor.InputFrame) []byte {
	w := c.writer(KindInput)
	w.WriteQ(f.Timestamp)
	w.WriteF(f.Direction)
	w.WriteC(f.Flags)
	return w.Bytes()
}

func (c *Codec) DecodeInput(b []byte) (actor.InputFrame, error) {
	r, err := c.reader(b, KindInput)
	if err != nil {
		return actor.InputFrame{}, err
	}
	f := actor.InputFrame{Timestamp: r.ReadQ(), Direction: r.ReadF(), Flags: r.ReadC()}
	return finish(f, r, KindInput)
}

// EncodeCoordSet writes the members in index order.
func (c *Codec) EncodeCoordSet(s *spatial.CoordSet) []byte {
	w := c.writer(KindCoordSet)
	w.WriteDU(uint32(s.Len()))
	for i := 0; i < s.Len(); i++ {
		w.WriteD(s.Key(i))
	}
	return w.Bytes()
}

func (c *Codec) DecodeCoordSet(b []byte) (*spatial.CoordSet, error) {
	r, err := c.reader(b, KindCoordSet)
	if err != nil {
		return nil, err
	}
	n := int(r.ReadDU())
	if n*4 > r.Remaining() {
		return nil, fmt.Errorf("decode %s: %d members: %w", KindCoordSet, n, ErrShortBuffer)
	}
	s := spatial.NewCoordSet()
	for i := 0; i < n; i++ {
		s.AddKey(r.ReadD())
	}
	return finish(s, r, KindCoordSet)
}
