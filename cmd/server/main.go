package main

import "github.com/atelierpoint/studio-backend/internal/bootstrap"

func main() {
	bootstrap.Run()
}
