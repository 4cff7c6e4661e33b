package main

import "tasktrack/internal/app"

func main() {
	app.Run()
}
