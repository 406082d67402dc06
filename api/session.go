package api

import (
	"encoding/json"
	"fmt"
	"io"
)

// Session protocol messages. Every message is one JSON document followed by
// a newline. Responses carry the ID of the request they answer, so a client
// may pipeline requests over one connection.

// PrintRequest asks the host to print a message for a project.
type PrintRequest struct {
	ProjectID string      `json:"projectId"`
	Message   string      `json:"message"`
	Type      MessageType `json:"type"`
}

// GetConfigSpecRequest asks the host for a project's configuration
// specification.
type GetConfigSpecRequest struct {
	ProjectID string `json:"projectId"`
}

// UpdateConfigSpecRequest replaces a project's configuration specification.
type UpdateConfigSpecRequest struct {
	ProjectID  string             `json:"projectId"`
	ConfigSpec *CompositeSpecNode `json:"configSpec"`
}

// Request is the envelope of every client to host message. Exactly one
// operation field is set.
type Request struct {
	ID               int64                    `json:"id"`
	Print            *PrintRequest            `json:"print,omitempty"`
	GetConfigSpec    *GetConfigSpecRequest    `json:"getConfigSpec,omitempty"`
	UpdateConfigSpec *UpdateConfigSpecRequest `json:"updateConfigSpec,omitempty"`
}

// Operation returns the name of the requested operation, or "" if none
// or more than one is set.
func (r *Request) Operation() string {
	var ops []string
	if r.Print != nil {
		ops = append(ops, "print")
	}
	if r.GetConfigSpec != nil {
		ops = append(ops, "getConfigSpec")
	}
	if r.UpdateConfigSpec != nil {
		ops = append(ops, "updateConfigSpec")
	}
	if len(ops) != 1 {
		return ""
	}
	return ops[0]
}

// Response is the envelope of every host to client message.
type Response struct {
	ID     int64   `json:"id"`
	Error  *Error  `json:"error,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// Result holds the payload of a successful response. It is empty for
// operations without a payload.
type Result struct {
	ConfigSpec *CompositeSpecNode `json:"configSpec,omitempty"`
}

// WriteMessage writes v as one newline terminated JSON document.
func WriteMessage(w io.Writer, v any) error {
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if _, err := w.Write(append(d, '\n')); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
