package main

import "activity-partner/cmd/server"

func main() {
	server.Init()
	server.Run()
}
