package tool

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

type fakeTool struct {
	BaseTool
	result interface{}
	err    error
	calls  int
}

func newFakeTool(name string) *fakeTool {
	return &fakeTool{
		BaseTool: NewBaseTool(name, "a fake tool", map[string]interface{}{"type": "object"}),
		result:   "done",
	}
}

func (f *fakeTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	f.calls++
	return f.result, f.err
}

func TestManagerRegister(t *testing.T) {
	m := NewManager(zerolog.Nop())

	if err := m.Register(newFakeTool("alpha")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := m.Register(newFakeTool("alpha")); err == nil {
		t.Error("Register() error = nil, want duplicate rejection")
	}
	if err := m.Register(newFakeTool("")); err == nil {
		t.Error("Register() error = nil, want rejection of unnamed tool")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestManagerOrder(t *testing.T) {
	m := NewManager(zerolog.Nop())
	for _, name := range []string{"c", "a", "b"} {
		if err := m.Register(newFakeTool(name)); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	if got := m.Names(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("Names() = %v, want registration order", got)
	}
	if all := m.All(); len(all) != 3 || all[0].Name() != "c" {
		t.Errorf("All() order wrong: %d tools, first %q", len(all), all[0].Name())
	}
}

func TestManagerExecute(t *testing.T) {
	m := NewManager(zerolog.Nop())
	ft := newFakeTool("alpha")
	if err := m.Register(ft); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := m.Execute(context.Background(), "alpha", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "done" {
		t.Errorf("Execute() = %v, want done", got)
	}
	if ft.calls != 1 {
		t.Errorf("tool calls = %d, want 1", ft.calls)
	}

	if _, err := m.Execute(context.Background(), "missing", nil); err == nil {
		t.Error("Execute(missing) error = nil, want tool-not-found")
	}
}

func TestManagerObserver(t *testing.T) {
	m := NewManager(zerolog.Nop())

	okTool := newFakeTool("ok_tool")
	failTool := newFakeTool("fail_tool")
	failTool.err = errors.New("backend down")
	for _, ft := range []*fakeTool{okTool, failTool} {
		if err := m.Register(ft); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	var events []InvocationEvent
	m.SetObserver(func(e InvocationEvent) { events = append(events, e) })

	m.Execute(context.Background(), "ok_tool", nil)
	m.Execute(context.Background(), "fail_tool", nil)

	if len(events) != 2 {
		t.Fatalf("observer saw %d events, want 2", len(events))
	}
	if events[0].Tool != "ok_tool" || events[0].Outcome != "ok" {
		t.Errorf("first event = %+v, want ok_tool/ok", events[0])
	}
	if events[1].Outcome != "error" || events[1].Error == "" {
		t.Errorf("second event = %+v, want error outcome with message", events[1])
	}
}
