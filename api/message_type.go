package api

import "fmt"

// MessageType is the severity of a printed message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageDebug
	MessageWarning
	MessageError
)

var messageTypeNames = map[MessageType]string{
	MessageInfo:    "INFO",
	MessageDebug:   "DEBUG",
	MessageWarning: "WARNING",
	MessageError:   "ERROR",
}

func (t MessageType) String() string {
	s, ok := messageTypeNames[t]
	if ok {
		return s
	}
	return fmt.Sprintf("MessageType(%d)", int(t))
}

func (t MessageType) MarshalText() ([]byte, error) {
	s, ok := messageTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown message type %d", int(t))
	}
	return []byte(s), nil
}

func (t *MessageType) UnmarshalText(d []byte) error {
	mt, err := ParseMessageType(string(d))
	if err != nil {
		return err
	}
	*t = mt
	return nil
}

// ParseMessageType parses a message type name such as "WARNING".
func ParseMessageType(s string) (MessageType, error) {
	for t, name := range messageTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unrecognized message type %q", s)
}
