package main

import "studioplan/internal/app/server"

func main() {
	server.Run()
}
