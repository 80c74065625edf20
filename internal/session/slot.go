// Package session holds the single signed-in identity of a client.
//
// A Slot is one durable cell under the fixed Key. The web server resolves a
// slot per request through a Provider (cookie or redis); the CLI keeps its
// slot in a file.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/batch26/keepsake/internal/model"
)

// Key names the slot wherever it is persisted: cookie name, redis key prefix.
const Key = "batch26_mock_user"

type Slot interface {
	// Load returns the stored identity, or nil when the slot is empty.
	Load(ctx context.Context) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}

// Provider resolves the slot belonging to the client making r.
type Provider interface {
	Slot(w http.ResponseWriter, r *http.Request) Slot
}

// decode treats unreadable slot content as an empty slot.
func decode(data []byte) *model.User {
	var user model.User
	err := json.Unmarshal(data, &user)
	if err != nil || user.ID == "" {
		slog.Warn("discarding unreadable session slot", "error", err)
		return nil
	}
	return &user
}

func clone(user *model.User) *model.User {
	if user == nil {
		return nil
	}
	u := *user
	return &u
}
