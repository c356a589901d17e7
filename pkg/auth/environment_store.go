package auth

import (
	"os"

	"github.com/goccy/go-json"
)

// EnvironmentStore exposes a session copied out of a browser through
// IGCLIENT_SESSIONID and IGCLIENT_CSRFTOKEN. It is read-only.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// ReadBlob builds a cookie blob from the environment. The key is ignored.
func (e *EnvironmentStore) ReadBlob(string) ([]byte, error) {
	sessionID := os.Getenv("IGCLIENT_SESSIONID")
	csrfToken := os.Getenv("IGCLIENT_CSRFTOKEN")
	if sessionID == "" || csrfToken == "" {
		return nil, ErrCredentialsNotFound
	}

	cookies := map[string]string{
		"sessionid": sessionID,
		"csrftoken": csrfToken,
	}
	if userID := os.Getenv("IGCLIENT_DS_USER_ID"); userID != "" {
		cookies["ds_user_id"] = userID
	}
	if mid := os.Getenv("IGCLIENT_MID"); mid != "" {
		cookies["mid"] = mid
	}

	return json.Marshal(cookies)
}

// WriteBlob is not supported for environment variables
func (e *EnvironmentStore) WriteBlob(string, []byte) error {
	return ErrStoreUnavailable
}

// ClearBlob is not supported for environment variables
func (e *EnvironmentStore) ClearBlob(string) error {
	return ErrStoreUnavailable
}
