package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	fmt.Println("Setting up pay-at-table development environment")

	if err := checkDocker(); err != nil {
		fmt.Printf("Docker issue detected: %v\n", err)
		fmt.Println("You can still run with KAFKA_MOCK_MODE=true")
		return
	}

	fmt.Println("Docker is running")
	fmt.Println("Starting MySQL, Kafka and Redis...")

	cmd := exec.Command("docker-compose", "up", "-d", "mysql", "kafka", "redis")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("Failed to start services: %v\n", err)
		return
	}

	fmt.Println("Services started successfully")
	fmt.Println("Run: go run scripts/migrate/migrate.go -migration scripts/migrate/seed.sql")
}

func checkDocker() error {
	cmd := exec.Command("docker", "info")
	return cmd.Run()
}
