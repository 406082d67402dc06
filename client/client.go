package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/convert"
	"github.com/paddle-build/paddle-plugin-go/debug"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

var ErrClosed = errors.New("client closed")

// Client is a connection to a plugin host.
type Client struct {
	conn io.ReadWriteCloser
	log  *slog.Logger

	seq     atomic.Int64
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[int64]chan *api.Response
	readErr error

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the host at addr, retrying with backoff until the
// connection succeeds or ctx is done.
func Dial(ctx context.Context, addr string) (*Client, error) {
	log := slog.Default().With("component", "client", "addr", addr)
	backoff := 100 * time.Millisecond
	maxBackoff := 5 * time.Second
	dialer := &net.Dialer{Timeout: 5 * time.Second}

	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			return newClient(conn, log), nil
		}
		log.Debug("failed to connect to host, retrying", "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to %s: %w", addr, errors.Join(ctx.Err(), err))
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// New returns a client speaking the session protocol over conn.
func New(conn io.ReadWriteCloser) *Client {
	return newClient(conn, slog.Default().With("component", "client"))
}

func newClient(conn io.ReadWriteCloser, log *slog.Logger) *Client {
	c := &Client{
		conn:    conn,
		log:     log,
		pending: make(map[int64]chan *api.Response),
		done:    make(chan struct{}),
	}
	go c.reader()
	return c
}

// Close closes the connection. Calls in flight fail with ErrClosed.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	<-c.done
	return err
}

// PrintMessage asks the host to print message for projectID.
func (c *Client) PrintMessage(ctx context.Context, projectID, message string, typ api.MessageType) error {
	_, err := c.call(ctx, &api.Request{
		Print: &api.PrintRequest{ProjectID: projectID, Message: message, Type: typ},
	})
	return err
}

// GetConfigSpec fetches the configuration specification of projectID.
func (c *Client) GetConfigSpec(ctx context.Context, projectID string) (*spec.Composite, error) {
	res, err := c.call(ctx, &api.Request{
		GetConfigSpec: &api.GetConfigSpecRequest{ProjectID: projectID},
	})
	if err != nil {
		return nil, err
	}
	if res == nil || res.ConfigSpec == nil {
		return nil, fmt.Errorf("getConfigSpec %q: response carries no spec", projectID)
	}
	return convert.ToSpec(res.ConfigSpec)
}

// UpdateConfigSpec replaces the configuration specification of projectID.
func (c *Client) UpdateConfigSpec(ctx context.Context, projectID string, cs *spec.Composite) error {
	msg, err := convert.FromSpec(cs)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, &api.Request{
		UpdateConfigSpec: &api.UpdateConfigSpecRequest{ProjectID: projectID, ConfigSpec: msg},
	})
	return err
}

func (c *Client) call(ctx context.Context, req *api.Request) (*api.Result, error) {
	req.ID = c.seq.Add(1)
	ch := make(chan *api.Response, 1)

	c.mu.Lock()
	if c.pending == nil {
		err := c.readErr
		c.mu.Unlock()
		return nil, err
	}
	c.pending[req.ID] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
	}()

	c.log.Debug("request", "id", req.ID, "op", req.Operation())
	c.writeMu.Lock()
	err := api.WriteMessage(c.conn, req)
	c.writeMu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		// the response may have been routed just before the reader stopped
		select {
		case resp := <-ch:
			if resp.Error != nil {
				return nil, resp.Error
			}
			return resp.Result, nil
		default:
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return nil, c.readErr
	}
}

// reader routes responses to pending calls until the connection fails.
func (c *Client) reader() {
	dec := json.NewDecoder(c.conn)
	var err error
	for {
		var resp api.Response
		if err = dec.Decode(&resp); err != nil {
			break
		}
		if debug.Session() {
			debug.Logf("client: response %d\n", resp.ID)
			debug.LogAny(&resp)
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		c.mu.Unlock()
		if !ok {
			c.log.Warn("response for unknown request", "id", resp.ID)
			continue
		}
		select {
		case ch <- &resp:
		default:
			c.log.Warn("duplicate response", "id", resp.ID)
		}
	}

	readErr := ErrClosed
	if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
		readErr = fmt.Errorf("%w: %w", ErrClosed, err)
	}
	c.mu.Lock()
	c.readErr = readErr
	c.pending = nil
	c.mu.Unlock()
	close(c.done)
}
