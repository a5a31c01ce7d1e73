package main

import (
	"os"

	"github.com/jpillora/overseer"

	"github.com/benedict-erwin/store-console/cmd"

	_ "github.com/benedict-erwin/store-console/http/v1/route"
)

// main starts the CLI; serve runs under overseer for zero-downtime deployment
func main() {
	if len(os.Args) >= 2 && os.Args[1] == "serve" {
		overseer.Run(overseer.Config{
			Program: func(state overseer.State) {
				cmd.SetListener(state.Listener)
				cmd.Execute()
			},
			Address:          serveAddress(),
			RestartSignal:    overseer.SIGUSR2,
			TerminateTimeout: 30,
		})
		return
	}
	// dev and the CLI commands run without overseer
	cmd.Execute()
}

// serveAddress reads STORE_APP_PORT before config is loaded, defaulting to :3000
func serveAddress() string {
	if port := os.Getenv("STORE_APP_PORT"); port != "" {
		return ":" + port
	}
	return ":3000"
}
