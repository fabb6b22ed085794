package domain

type PacketKind string

const PacketOpenScreen PacketKind = "open_screen"

type PacketClass int

const (
	// PacketUnclassified is everything the bot has never been taught about.
	PacketUnclassified PacketClass = iota
	// PacketIgnored is known background traffic.
	PacketIgnored
	// PacketScreenOpened arms the screen-open timer.
	PacketScreenOpened
)

func (c PacketClass) String() string {
	switch c {
	case PacketIgnored:
		return "ignored"
	case PacketScreenOpened:
		return "screen_opened"
	default:
		return "unclassified"
	}
}

var ignoredPackets = map[PacketKind]struct{}{
	"level_particles":        {},
	"ping":                   {},
	"boss_event":             {},
	"entity_position_sync":   {},
	"move_entity_rot":        {},
	"move_entity_pos":        {},
	"move_entity_pos_rot":    {},
	"rotate_head":            {},
	"container_set_slot":     {},
	"set_objective":          {},
	"set_entity_data":        {},
	"set_entity_motion":      {},
	"player_info_update":     {},
	"player_info_remove":     {},
	"set_equipment":          {},
	"animate":                {},
	"add_entity":             {},
	"level_chunk_with_light": {},
	"keep_alive":             {},
	"set_player_team":        {},
	"remove_entities":        {},
	"update_attributes":      {},
}

func ClassifyPacket(kind PacketKind) PacketClass {
	if kind == PacketOpenScreen {
		return PacketScreenOpened
	}
	if _, ok := ignoredPackets[kind]; ok {
		return PacketIgnored
	}
	return PacketUnclassified
}
