package slack

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/backend/mock"
	"github.com/onecloudtech/insight/internal/lookup"
	"github.com/onecloudtech/insight/internal/tool"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	catalog, err := lookup.NewCatalog(lookup.Builtins()...)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	client := lookup.NewClient(catalog, mock.NewGenerator(), lookup.Wrap, zerolog.Nop())
	manager := tool.NewManager(zerolog.Nop())
	for _, op := range catalog.All() {
		if err := manager.Register(tool.NewLookupTool(client, op)); err != nil {
			t.Fatalf("Register(%s) error = %v", op.Name, err)
		}
	}
	return &Bot{manager: manager, log: zerolog.Nop()}
}

func TestReplyForHelp(t *testing.T) {
	bot := newTestBot(t)

	for _, text := range []string{"", "help", "Help"} {
		reply := bot.replyFor(context.Background(), text)
		if !strings.Contains(reply, "Mention me with a tool name") {
			t.Errorf("replyFor(%q) = %q, want help text", text, reply)
		}
	}
}

func TestReplyForToolList(t *testing.T) {
	bot := newTestBot(t)

	reply := bot.replyFor(context.Background(), "tools")
	for _, want := range []string{"get_person_baseinfo", "query_cdr", "search_sms_records"} {
		if !strings.Contains(reply, want) {
			t.Errorf("tool list missing %q:\n%s", want, reply)
		}
	}
}

func TestReplyForLookup(t *testing.T) {
	bot := newTestBot(t)

	reply := bot.replyFor(context.Background(), "get_person_baseinfo phonenum=96890001122")
	if !strings.HasPrefix(reply, "```") || !strings.HasSuffix(reply, "```") {
		t.Fatalf("reply is not fenced JSON:\n%s", reply)
	}
	if !strings.Contains(reply, `"api": "/ai/baseinfo"`) {
		t.Errorf("reply missing wrapped api field:\n%s", reply)
	}
	if !strings.Contains(reply, `"found": true`) {
		t.Errorf("reply missing found flag:\n%s", reply)
	}
}

func TestReplyForMissingParams(t *testing.T) {
	bot := newTestBot(t)

	reply := bot.replyFor(context.Background(), "query_cdr")
	if !strings.Contains(reply, "MISSING_REQUIRED_PARAMS") {
		t.Errorf("reply should carry the missing-params result:\n%s", reply)
	}
	if strings.Contains(reply, "Lookup failed") {
		t.Errorf("missing params should not read as a hard failure:\n%s", reply)
	}
}

func TestReplyForUnknownTool(t *testing.T) {
	bot := newTestBot(t)

	reply := bot.replyFor(context.Background(), "frobnicate x=1")
	if !strings.Contains(reply, "Unknown tool") {
		t.Errorf("replyFor(frobnicate) = %q, want unknown-tool message", reply)
	}
}

func TestReplyForBadArguments(t *testing.T) {
	bot := newTestBot(t)

	reply := bot.replyFor(context.Background(), "get_person_baseinfo just-a-word")
	if !strings.Contains(reply, "not key=value") {
		t.Errorf("replyFor with bad args = %q, want key=value hint", reply)
	}
}
