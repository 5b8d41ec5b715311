package main

import (
	"elca2dgnb/cmd/elca-cli/commands"
	"elca2dgnb/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
