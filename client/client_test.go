package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/server"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

// lockedBuffer is written by the host while the test reads it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startServer(t *testing.T) (*server.MemoryHost, *lockedBuffer, string) {
	t.Helper()
	color.NoColor = true
	log := slog.New(slog.NewTextHandler(&lockedBuffer{}, nil))
	out := &lockedBuffer{}
	host := server.NewMemoryHost(out, log)
	srv := server.New(&server.Spec{Host: host, Log: log})
	if err := srv.StartTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start TCP: %v", err)
	}
	t.Cleanup(func() { srv.StopTCP() })
	return host, out, srv.TCPAddr()
}

func dial(t *testing.T, addr string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, addr)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleSpec() *spec.Composite {
	root := spec.NewComposite("project", "")
	root.AddRequired("name")
	root.SetProperty("name", spec.NewString("Name", ""))
	root.SetProperty("retries", spec.NewInteger("Retries", "", 1, 2, 3))
	return root
}

func TestClientRoundTrip(t *testing.T) {
	host, out, addr := startServer(t)
	c := dial(t, addr)
	ctx := context.Background()

	if _, err := c.GetConfigSpec(ctx, "web"); !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("GetConfigSpec(unknown) error = %v, want not_found", err)
	}

	cs := sampleSpec()
	if err := c.UpdateConfigSpec(ctx, "web", cs); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetConfigSpec(ctx, "web")
	if err != nil {
		t.Fatal(err)
	}
	if !spec.Equal(cs, got) {
		t.Errorf("fetched spec differs from pushed spec")
	}
	if diff := cmp.Diff([]string{"web"}, host.Projects()); diff != "" {
		t.Errorf("projects (-want +got):\n%s", diff)
	}

	if err := c.PrintMessage(ctx, "web", "built", api.MessageInfo); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[web] INFO    built") {
		t.Errorf("printed %q", out.String())
	}
}

func TestClientConcurrentCalls(t *testing.T) {
	host, _, addr := startServer(t)
	c := dial(t, addr)
	for i := range 5 {
		host.SetConfigSpec(fmt.Sprintf("p%d", i), spec.NewComposite(fmt.Sprintf("P%d", i), ""))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := range 50 {
		wg.Go(func() {
			id := fmt.Sprintf("p%d", i%5)
			cs, err := c.GetConfigSpec(context.Background(), id)
			if err != nil {
				errs <- err
				return
			}
			if cs.Title() != fmt.Sprintf("P%d", i%5) {
				errs <- fmt.Errorf("%s: got title %q", id, cs.Title())
			}
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestClientContextAndClose(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	c := New(cliConn)

	// nothing answers on the far side, so a call waits for its context
	go func() {
		buf := make([]byte, 4096)
		for {
			if _, err := srvConn.Read(buf); err != nil {
				return
			}
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.GetConfigSpec(ctx, "web"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	srvConn.Close()
	if err := c.PrintMessage(context.Background(), "web", "x", api.MessageInfo); !errors.Is(err, ErrClosed) {
		t.Errorf("call after Close: err = %v, want ErrClosed", err)
	}
}

func TestClientDuplicateResponses(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	c := New(cliConn)
	defer c.Close()

	// the far side answers the first request three times
	go func() {
		defer srvConn.Close()
		dec := json.NewDecoder(srvConn)
		for i := 0; ; i++ {
			var req api.Request
			if err := dec.Decode(&req); err != nil {
				return
			}
			n := 1
			if i == 0 {
				n = 3
			}
			for range n {
				if err := api.WriteMessage(srvConn, &api.Response{ID: req.ID, Result: &api.Result{}}); err != nil {
					return
				}
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := range 3 {
		if err := c.PrintMessage(ctx, "web", fmt.Sprint(i), api.MessageInfo); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestDialGivesUp(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := Dial(ctx, addr); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Dial error = %v, want deadline exceeded", err)
	}
}
