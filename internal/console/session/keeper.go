package session

import "sync"

// Keeper holds the current bearer token behind a mutex. It is the
// TokenSource of the API client: requests read the token at call time, so
// clearing it here detaches the credential from every subsequent request.
type Keeper struct {
	mu    sync.RWMutex
	token string
}

// Token returns the current token, empty when logged out.
func (k *Keeper) Token() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.token
}

// Set replaces the token.
func (k *Keeper) Set(token string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.token = token
}

// Clear removes the token.
func (k *Keeper) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.token = ""
}
