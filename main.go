package main

import "github.com/killallgit/timeline-api/cmd"

// @title           Timeline API
// @version         1.0.0
// @description     Non-linear timeline editing for media: tracks, clips, undo/redo, clipboard and EDL export
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/timeline-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
