package domain

import "fmt"

// Command is a raw instruction handed to the transport, without the leading
// slash.
type Command string

const (
	CommandLobby       Command = "lobby"
	CommandSkyblock    Command = "skyblock"
	CommandWarpIsland  Command = "warp island"
	CommandStatusCheck Command = "locraw"
)

func VisitCommand(target string) Command {
	return Command(fmt.Sprintf("visit %s", target))
}

func (c Command) String() string {
	return string(c)
}
