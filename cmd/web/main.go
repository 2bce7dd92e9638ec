package main

import "reviewhub/internal/app"

func main() {
	app.Run()
}
