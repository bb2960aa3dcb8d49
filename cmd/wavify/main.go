package main

import "wavify/cmd/wavify/cmd"

// @title wavify API
// @version 1.0
// @description Converts uploaded compressed audio to WAV and optionally transcribes it.
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}
