package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type testNavigator struct {
	advances, retreats int
}

func (n *testNavigator) Advance() { n.advances++ }
func (n *testNavigator) Retreat() { n.retreats++ }

// testMessage implements mqtt.Message.
type testMessage struct {
	topic   string
	payload []byte
}

func (m testMessage) Duplicate() bool   { return false }
func (m testMessage) Qos() byte         { return 0 }
func (m testMessage) Retained() bool    { return false }
func (m testMessage) Topic() string     { return m.topic }
func (m testMessage) MessageID() uint16 { return 1 }
func (m testMessage) Payload() []byte   { return m.payload }
func (m testMessage) Ack()              {}

// testToken implements mqtt.Token.
type testToken struct {
	done bool
	err  error
}

func (t testToken) Wait() bool                     { return t.done }
func (t testToken) WaitTimeout(time.Duration) bool { return t.done }
func (t testToken) Error() error                   { return t.err }

func (t testToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.done {
		close(ch)
	}
	return ch
}

func TestParse(t *testing.T) {
	tests := []struct {
		Payload string
		Advance bool
	}{
		{"next", true},
		{" Advance\n", true},
		{"previous", false},
		{"retreat", false},
		{`{"command":"next"}`, true},
		{`{"command": "previous"}`, false},
	}
	for _, test := range tests {
		advance, err := Parse([]byte(test.Payload))
		if err != nil {
			t.Errorf("%q: %v", test.Payload, err)
			continue
		}
		if advance != test.Advance {
			t.Errorf("%q: expected advance=%t, got %t", test.Payload, test.Advance, advance)
		}
	}

	for _, payload := range []string{"", "jump", `{"command":"reboot"}`} {
		if _, err := Parse([]byte(payload)); !errors.Is(err, ErrCommand) {
			t.Errorf("%q: expected %v, got %v", payload, ErrCommand, err)
		}
	}
	if _, err := Parse([]byte(`{"command":`)); err == nil {
		t.Error("expected error for broken JSON")
	}
}

func TestHandler(t *testing.T) {
	var (
		nav = new(testNavigator)
		h   = NewHandler(nav, slog.New(slog.NewTextHandler(io.Discard, nil)))
	)
	for _, payload := range []string{"next", "next", "previous", "bogus", `{"command":"advance"}`} {
		h.Handle(nil, testMessage{topic: "pager/command", payload: []byte(payload)})
	}
	if nav.advances != 3 || nav.retreats != 1 {
		t.Errorf("expected 3 advances and 1 retreat, got %d and %d", nav.advances, nav.retreats)
	}
}

func TestBrokerURL(t *testing.T) {
	for in, want := range map[string]string{
		"localhost:1883":        "tcp://localhost:1883",
		"ssl://broker:8883":     "ssl://broker:8883",
		"ws://broker:9001/mqtt": "ws://broker:9001/mqtt",
	} {
		if got := brokerURL(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestSubscribed(t *testing.T) {
	errRefused := errors.New("test: not authorized")

	t.Run("acknowledged", func(it *testing.T) {
		if err := subscribed(testToken{done: true}, "pager/command", time.Millisecond); err != nil {
			it.Fatal(err)
		}
	})

	t.Run("timeout", func(it *testing.T) {
		err := subscribed(testToken{}, "pager/command", time.Millisecond)
		if !errors.Is(err, ErrTimeout) {
			it.Fatalf("expected %v, got %v", ErrTimeout, err)
		}
		if !strings.Contains(err.Error(), "pager/command") {
			it.Errorf("expected error to name the topic, got %q", err)
		}
	})

	t.Run("refused", func(it *testing.T) {
		err := subscribed(testToken{done: true, err: errRefused}, "pager/command", time.Millisecond)
		if !errors.Is(err, errRefused) {
			it.Fatalf("expected %v, got %v", errRefused, err)
		}
	})
}

func TestConnectUnreachable(t *testing.T) {
	timeout := connectTimeout
	connectTimeout = 50 * time.Millisecond
	t.Cleanup(func() { connectTimeout = timeout })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := Connect(Config{Broker: "127.0.0.1:1", Topic: "pager/command"}, new(testNavigator), logger)
	if err != nil {
		t.Fatalf("expected the client to keep retrying, got %v", err)
	}
	if c == nil {
		t.Fatal("expected a client")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err = c.Run(ctx); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}
