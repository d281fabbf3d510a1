package tools

import (
	"context"
	"errors"
	"testing"
)

func TestRegistry_RegisterAndList(t *testing.T) {
	r := NewRegistry()
	h := func(context.Context, map[string]any) (any, error) { return "x", nil }

	for _, name := range []string{"b_tool", "a_tool", "c_tool"} {
		if err := r.Register(Tool{Name: name, Handler: h}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	// Registration order, not lexical.
	if list[0].Name != "b_tool" || list[1].Name != "a_tool" || list[2].Name != "c_tool" {
		t.Fatalf("order wrong: %v", list)
	}

	if err := r.Register(Tool{Name: "a_tool", Handler: h}); err == nil {
		t.Fatal("duplicate registration must fail")
	}
	if err := r.Register(Tool{Name: "no_handler"}); err == nil {
		t.Fatal("tool without handler must fail")
	}
}

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Tool{Name: "echo", Handler: func(_ context.Context, args map[string]any) (any, error) {
		return args["v"], nil
	}})
	_ = r.Register(Tool{Name: "broken", Handler: func(context.Context, map[string]any) (any, error) {
		return nil, errors.New("conn refused")
	}})

	env := r.Call(context.Background(), "echo", map[string]any{"v": "hello"})
	if !env.OK || env.Result != "hello" || env.Error != nil {
		t.Fatalf("echo envelope wrong: %+v", env)
	}
	if env.Meta.CallID == "" || env.Meta.Tool != "echo" {
		t.Fatalf("meta wrong: %+v", env.Meta)
	}

	env = r.Call(context.Background(), "broken", nil)
	if env.OK || env.Error == nil || env.Error.Code != "transport_error" {
		t.Fatalf("transport failure envelope wrong: %+v", env)
	}

	env = r.Call(context.Background(), "missing", nil)
	if env.OK || env.Error == nil || env.Error.Code != "unknown_tool" {
		t.Fatalf("unknown tool envelope wrong: %+v", env)
	}
}
