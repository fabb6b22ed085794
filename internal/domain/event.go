package domain

import "fmt"

type EventKind string

const (
	EventInit       EventKind = "init"
	EventSpawn      EventKind = "spawn"
	EventChat       EventKind = "chat"
	EventTick       EventKind = "tick"
	EventPacket     EventKind = "packet"
	EventDisconnect EventKind = "disconnect"
)

// Event is one inbound notification for an account. The set of
// implementations is closed to this package.
type Event interface {
	Kind() EventKind
	isEvent()
}

type InitEvent struct{}

type SpawnEvent struct{}

type ChatEvent struct {
	Text string
}

type TickEvent struct{}

type PacketEvent struct {
	Packet PacketKind
}

type DisconnectEvent struct{}

func (InitEvent) Kind() EventKind       { return EventInit }
func (SpawnEvent) Kind() EventKind      { return EventSpawn }
func (ChatEvent) Kind() EventKind       { return EventChat }
func (TickEvent) Kind() EventKind       { return EventTick }
func (PacketEvent) Kind() EventKind     { return EventPacket }
func (DisconnectEvent) Kind() EventKind { return EventDisconnect }

func (InitEvent) isEvent()       {}
func (SpawnEvent) isEvent()      {}
func (ChatEvent) isEvent()       {}
func (TickEvent) isEvent()       {}
func (PacketEvent) isEvent()     {}
func (DisconnectEvent) isEvent() {}

// ParseEventKind maps a wire name onto a known event kind.
func ParseEventKind(raw string) (EventKind, error) {
	switch kind := EventKind(raw); kind {
	case EventInit, EventSpawn, EventChat, EventTick, EventPacket, EventDisconnect:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown event kind %q", raw)
	}
}

type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// ClientInformation is the cosmetic client configuration announced on init.
type ClientInformation struct {
	MainHand Hand
}
