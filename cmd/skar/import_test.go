package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/skype-archive/internal/config"
)

const textExport = `==================================================
Action Type: Chat Message
ChatID: #me/$anna;1
User Name: me
Display Name: Me
Action Time: 05.06.2019 12:00:00
Chat Message: hi
==================================================
Action Type: Chat Message
ChatID: #anna/$me;2
User Name: anna
Display Name: Anna
Action Time: 05.06.2019 12:01:00
Chat Message: hello
==================================================
Action Type: Chat Message
ChatID: #me/$anna;1
User Name: me
Action Time: 05.06.2019 12:02:00
Chat Message: bye
==================================================
`

const messagesJSON = `{"conversations":[
  {"id":"8:anna","displayName":"Anna K","MessageList":[
    {"from":"8:me","originalarrivaltime":"2019-06-05T12:00:00Z","messagetype":"RichText","content":"hi <b>there</b>"},
    {"from":"8:anna","originalarrivaltime":"2019-06-05T12:01:00Z","messagetype":"Event/Call","content":"call"},
    {"from":"8:me","originalarrivaltime":"2019-06-05T12:02:00Z","messagetype":"RichText","content":"bye"}
  ]}
]}`

const endpointsJSON = `{"contacts":[{"id":"8:anna","displayname":"Anna"},{"id":"8:bob"}]}`

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg := config.Defaults(home)
	cfg.TextExport = filepath.Join(cfg.ExportDir, "skype_messages.txt")
	cfg.MessagesJSON = filepath.Join(cfg.ExportDir, "messages.json")
	cfg.EndpointsJSON = filepath.Join(cfg.ExportDir, "endpoints.json")
	return cfg
}

func TestPlanImport_PrefersJSON(t *testing.T) {
	cfg := testConfig(t)
	write(t, cfg.TextExport, textExport)
	write(t, cfg.MessagesJSON, messagesJSON)
	write(t, cfg.EndpointsJSON, endpointsJSON)

	plan, err := planImport(cfg, importOptions{})
	if err != nil {
		t.Fatalf("planImport: %v", err)
	}
	if plan.format != formatJSON || plan.in != cfg.MessagesJSON || plan.endpoints != cfg.EndpointsJSON {
		t.Fatalf("plan=%+v", plan)
	}
}

func TestPlanImport_ScansExportDir(t *testing.T) {
	cfg := testConfig(t)
	other := filepath.Join(cfg.ExportDir, "2019", "export.txt")
	write(t, other, textExport)

	plan, err := planImport(cfg, importOptions{})
	if err != nil {
		t.Fatalf("planImport: %v", err)
	}
	if plan.format != formatText || plan.in != other {
		t.Fatalf("plan=%+v", plan)
	}
}

func TestPlanImport_Flags(t *testing.T) {
	cfg := testConfig(t)

	plan, err := planImport(cfg, importOptions{in: "/tmp/x/Messages.JSON", endpoints: "/tmp/x/e.json"})
	if err != nil {
		t.Fatalf("planImport: %v", err)
	}
	if plan.format != formatJSON || plan.endpoints != "/tmp/x/e.json" {
		t.Fatalf("plan=%+v", plan)
	}

	if _, err := planImport(cfg, importOptions{format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := planImport(cfg, importOptions{}); err == nil || !strings.Contains(err.Error(), "no export found") {
		t.Fatalf("err=%v, want no export found", err)
	}
}

func TestRunImport_Text(t *testing.T) {
	cfg := testConfig(t)
	write(t, cfg.TextExport, "\ufeff"+textExport)

	a, stats, err := runImport(importPlan{format: formatText, in: cfg.TextExport}, "media/", nil)
	if err != nil {
		t.Fatalf("runImport: %v", err)
	}
	if a.OwnerID != "me" || stats.Chats != 1 || stats.Messages != 3 {
		t.Fatalf("owner=%q stats=%s", a.OwnerID, stats)
	}
	if got := a.ChatName("anna|me"); got != "Chat with Anna" {
		t.Fatalf("name=%q", got)
	}
}

func TestRunImport_JSON(t *testing.T) {
	cfg := testConfig(t)
	write(t, cfg.MessagesJSON, messagesJSON)
	write(t, cfg.EndpointsJSON, endpointsJSON)

	plan := importPlan{format: formatJSON, in: cfg.MessagesJSON, endpoints: cfg.EndpointsJSON}
	a, stats, err := runImport(plan, "media/", nil)
	if err != nil {
		t.Fatalf("runImport: %v", err)
	}
	msgs := a.Chats["8:anna"]
	if len(msgs) != 2 || msgs[0].Content != "hi there" || msgs[0].From != "me" {
		t.Fatalf("msgs=%+v", msgs)
	}
	if a.Contacts["8:anna"] != "Anna K" || a.Contacts["8:bob"] != "Unknown contact" {
		t.Fatalf("contacts=%v", a.Contacts)
	}
	if stats.Messages != 2 {
		t.Fatalf("stats=%s", stats)
	}
}

func TestRunImport_MissingEndpointsIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	write(t, cfg.MessagesJSON, messagesJSON)

	plan := importPlan{format: formatJSON, in: cfg.MessagesJSON, endpoints: cfg.EndpointsJSON}
	a, _, err := runImport(plan, "media/", nil)
	if err != nil {
		t.Fatalf("runImport: %v", err)
	}
	if a.Contacts["8:anna"] != "Anna K" {
		t.Fatalf("contacts=%v", a.Contacts)
	}
}

func TestRunImport_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	if _, _, err := runImport(importPlan{format: formatText, in: cfg.TextExport}, "", nil); err == nil {
		t.Fatal("expected error for missing input")
	}
}
