package provider

import uidDomain "github.com/allisson/uids/internal/uid/domain"

// Defaults returns the built-in providers in tag order.
func Defaults() []uidDomain.Provider {
	return []uidDomain.Provider{
		NewUUIDv1Provider(),
		NewUUIDv4Provider(),
		NewPersistableProvider(),
		NewObjectIDProvider(),
	}
}
