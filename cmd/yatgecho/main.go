// yatgecho is an example bot built on this module: it echoes formatted
// messages back with their entities and converts between markup flavours.
package main

import (
	"os"

	"github.com/YaCodeDev/GoYaTgBotAPI/cmd/yatgecho/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
