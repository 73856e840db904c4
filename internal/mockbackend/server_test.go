package mockbackend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/backend/live"
	"github.com/onecloudtech/insight/internal/lookup"
)

func doGet(t *testing.T, s *Server, target string) envelope {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("GET %s status = %d, want 200", target, rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s body is not an envelope: %v", target, err)
	}
	return env
}

func TestLookupServesEnvelope(t *testing.T) {
	s := NewServer(":0", zerolog.Nop())

	env := doGet(t, s, "/ai/baseinfo?id=X99")
	if env.Code != 200 || env.Msg != "success" {
		t.Errorf("envelope = {%d %q}, want {200 success}", env.Code, env.Msg)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T, want object", env.Data)
	}
	if data["id"] != "X99" {
		t.Errorf("data.id = %v, want echoed X99", data["id"])
	}
}

func TestForcedFailure(t *testing.T) {
	s := NewServer(":0", zerolog.Nop())

	env := doGet(t, s, "/ai/baseinfo?__fail=boom")
	if env.Code != 500 || env.Msg != "boom" {
		t.Errorf("envelope = {%d %q}, want {500 boom}", env.Code, env.Msg)
	}

	env = doGet(t, s, "/ai/cdr?phone=1&__fail=")
	if env.Code != 500 || env.Msg != "forced failure" {
		t.Errorf("bare __fail envelope = {%d %q}, want {500 forced failure}", env.Code, env.Msg)
	}
}

func TestUnknownPaths(t *testing.T) {
	s := NewServer(":0", zerolog.Nop())

	env := doGet(t, s, "/nope")
	if env.Code != 404 {
		t.Errorf("code = %d, want 404", env.Code)
	}
	if !strings.Contains(env.Msg, "/nope") {
		t.Errorf("msg = %q, want the path named", env.Msg)
	}

	env = doGet(t, s, "/ai/nope")
	if env.Code != 404 {
		t.Errorf("/ai/nope code = %d, want 404", env.Code)
	}
}

func TestLiveGatewayAgainstDemoBackend(t *testing.T) {
	ts := httptest.NewServer(NewServer(":0", zerolog.Nop()).Handler())
	defer ts.Close()

	gw := live.New(ts.URL, 2*time.Second, zerolog.Nop())

	data, err := gw.Fetch(context.Background(), "/ai/baseinfo", map[string]string{"phonenum": "96890001122"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	obj, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("Fetch() data = %T, want object", data)
	}
	if obj["phonenum"] != "96890001122" {
		t.Errorf("phonenum = %v, want echoed value", obj["phonenum"])
	}

	_, err = gw.Fetch(context.Background(), "/ai/baseinfo", map[string]string{"__fail": "down"})
	var bizErr *lookup.BusinessError
	if !errors.As(err, &bizErr) {
		t.Fatalf("forced failure error = %T (%v), want *lookup.BusinessError", err, err)
	}
	if bizErr.Code != 500 || bizErr.Msg != "down" {
		t.Errorf("business error = {%d %q}, want {500 down}", bizErr.Code, bizErr.Msg)
	}
}
