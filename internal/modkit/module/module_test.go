package module

import (
	"reflect"
	"testing"

	phttp "replyguard/internal/platform/net/http"
	kit "replyguard/internal/platform/testkit"
)

type source interface{ Load() []string }

type staticSource []string

func (s staticSource) Load() []string { return s }

type guard interface{ Check() bool }

type fake struct{ ports any }

func (f fake) MountRoutes(phttp.Router) {}
func (f fake) Ports() any               { return f.ports }
func (f fake) Name() string             { return "keywords" }

type kwPorts struct {
	hidden int
	Source source
}

func TestPortsOf(t *testing.T) {
	src := staticSource{"crypto"}

	if got, ok := PortsOf[source](fake{ports: src}); !ok || got.Load()[0] != "crypto" {
		t.Fatalf("direct ports = %v %v", got, ok)
	}
	if got, ok := PortsOf[source](fake{ports: kwPorts{hidden: 1, Source: src}}); !ok || got == nil {
		t.Fatalf("field lookup failed")
	}
	if got, ok := PortsOf[kwPorts](fake{ports: kwPorts{Source: src}}); !ok || got.Source == nil {
		t.Fatalf("whole struct lookup failed")
	}
	for _, p := range []any{nil, 42, kwPorts{}} {
		if _, ok := PortsOf[guard](fake{ports: p}); ok {
			t.Fatalf("PortsOf[guard](%v) should miss", p)
		}
	}

	kit.MustPanic(t, func() { MustPortsOf[guard](fake{}) })
	kit.MustNotPanic(t, func() { MustPortsOf[source](fake{ports: src}) })
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("replies", nil)
	Register("auth", 1)
	Register("keywords", nil)
	Register("auth", 2)

	if got := Names(); !reflect.DeepEqual(got, []string{"auth", "keywords", "replies"}) {
		t.Fatalf("Names = %v", got)
	}
	Reset()
	if len(Names()) != 0 {
		t.Fatalf("Reset left %v", Names())
	}
}
