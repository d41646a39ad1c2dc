package main

import (
	"context"

	"hibid-backend/cmd/hibid-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
