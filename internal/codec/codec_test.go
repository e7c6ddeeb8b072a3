package codec

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/spatial"
)

func TestPawnRoundTrip(t *testing.T) {
	c, err := New("utf-8")
	if err != nil {
		t.Fatal(err)
	}
	p := actor.NewPawn(42, 7, "knight", 1234, mgl64.Vec2{-3.25, 8.5}, 0.4, 2.5)
	p.Direction = 1.25
	p.Rotation = -0.5
	p.Set(actor.StatusMoving)

	got, err := c.DecodePawn(c.EncodePawn(p))
	if err != nil {
		t.Fatalf("DecodePawn: %v", err)
	}
	if *got != *p {
		t.Fatalf("round trip = %+v, want %+v", got, p)
	}
}

func TestBig5Strings(t *testing.T) {
	c, err := New("big5")
	if err != nil {
		t.Fatal(err)
	}
	a := actor.New(1, "守衛", 0, mgl64.Vec2{}, 1)
	b := c.EncodeActor(a)
	got, err := c.DecodeActor(b)
	if err != nil {
		t.Fatalf("DecodeActor: %v", err)
	}
	if got.Config != "守衛" {
		t.Fatalf("config = %q", got.Config)
	}
}

func TestDecodeErrors(t *testing.T) {
	c, _ := New("utf-8")
	b := c.EncodeMobile(actor.NewMobile(1, "m", 0, mgl64.Vec2{1, 2}, 0.5, 1))

	if _, err := c.DecodeMobile(b[:len(b)-3]); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("truncated record: %v", err)
	}
	if _, err := c.DecodePawn(b); !errors.Is(err, ErrUnexpectedKind) {
		t.Errorf("wrong kind: %v", err)
	}
	bad := append([]byte{Version + 1}, b[1:]...)
	if _, err := c.DecodeMobile(bad); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("future version: %v", err)
	}
	if _, err := New("no-such-charset"); err == nil {
		t.Error("unknown charset accepted")
	}
}

func TestInputAndCoordSet(t *testing.T) {
	c, _ := New("utf-8")
	f := actor.InputFrame{Timestamp: 99, Direction: 3, Flags: actor.FlagMove | actor.FlagStrafe}
	got, err := c.DecodeInput(c.EncodeInput(f))
	if err != nil || got != f {
		t.Fatalf("input round trip = %+v, %v", got, err)
	}

	s := spatial.NewCoordSetRegion(coord.NewRect(-2, -2, 3, 2))
	s.Add(coord.MaxValue, coord.MinValue)
	b := c.EncodeCoordSet(s)
	if k, _ := Peek(b); k != KindCoordSet {
		t.Fatalf("Peek = %s", k)
	}
	back, err := c.DecodeCoordSet(b)
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != s.Len() || !back.Contains(coord.MaxValue, coord.MinValue) || !back.ContainsRegion(coord.NewRect(-2, -2, 3, 2)) {
		t.Fatalf("coord set round trip lost members: %d", back.Len())
	}
	if _, err := c.DecodeCoordSet(b[:len(b)-1]); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("truncated coord set: %v", err)
	}
}
