package crm

import "sync"

// CredentialMask replaces the credential value anywhere it would otherwise
// appear in diagnostics.
const CredentialMask = "****"

// CredentialHolder stores the long-lived access credential. The value is
// merged into request parameters transiently at dispatch time and is never
// stored on a Query, so queries stay safe to log and inspect.
type CredentialHolder struct {
	mu    sync.RWMutex
	value string
}

// NewCredentialHolder creates an empty holder.
func NewCredentialHolder() *CredentialHolder {
	return &CredentialHolder{}
}

// Set replaces the credential. An empty value is rejected.
func (h *CredentialHolder) Set(value string) error {
	if value == "" {
		return ErrCredentialRequired
	}

	h.mu.Lock()
	h.value = value
	h.mu.Unlock()

	return nil
}

// Get returns the current credential value.
func (h *CredentialHolder) Get() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.value == "" {
		return "", ErrCredentialNotSet
	}

	return h.value, nil
}

// IsSet reports whether a credential has been configured.
func (h *CredentialHolder) IsSet() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.value != ""
}

// String implements fmt.Stringer so %v and %s formatting cannot leak the value.
func (h *CredentialHolder) String() string {
	return CredentialMask
}

// GoString implements fmt.GoStringer so %#v cannot leak the value either.
func (h *CredentialHolder) GoString() string {
	return "crm.CredentialHolder{" + CredentialMask + "}"
}
