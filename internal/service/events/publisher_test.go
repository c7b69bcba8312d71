package events

import (
	"codepad-server/internal/conf"
	"codepad-server/internal/model"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

func runServer(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: -1, NoLog: true, NoSigs: true})
	if err != nil {
		t.Fatal(err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func TestConnectDisabled(t *testing.T) {
	p, err := Connect(conf.EventsConf{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(NopPublisher); !ok {
		t.Fatalf("expected NopPublisher, got %T", p)
	}
	if err := p.PublishRunResult(model.RunEvent{}); err != nil {
		t.Error(err)
	}
	p.Close()
}

func TestPublishRunResult(t *testing.T) {
	ns := runServer(t)

	sub, err := nats.Connect(ns.ClientURL())
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()
	msgs := make(chan *nats.Msg, 1)
	if _, err := sub.ChanSubscribe("codepad.run.result", msgs); err != nil {
		t.Fatal(err)
	}
	if err := sub.Flush(); err != nil {
		t.Fatal(err)
	}

	p, err := Connect(conf.EventsConf{NatsURL: ns.ClientURL(), Subject: "codepad.run.result"})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	ev := model.RunEvent{
		SessionID: "s1",
		Language:  "python",
		Outcome:   model.OutcomeCompleted,
		Output:    "Hello, World!\n",
		Token:     "t1",
	}
	if err := p.PublishRunResult(ev); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-msgs:
		var got model.RunEvent
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatal(err)
		}
		if got.SessionID != "s1" || got.Output != ev.Output || got.Outcome != model.OutcomeCompleted {
			t.Errorf("unexpected event %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}
