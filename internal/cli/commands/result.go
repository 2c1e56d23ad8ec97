package commands

import (
	"github.com/chessctl-dev/chessctl/internal/cli/client"
)

// finish turns a completed call into the command's error: transport and
// decode failures first, then non-2xx statuses as *client.APIError.
func finish[T any](reply client.Reply[T], err error) error {
	if err != nil {
		return err
	}
	return reply.Err()
}
