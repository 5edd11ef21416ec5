/*
Copyright © 2025 cloudservices
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/cloudservices/kbot/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}
}
