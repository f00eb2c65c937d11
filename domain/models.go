package domain

// Repository identifies a Git repository on a hosting provider.
type Repository struct {
	Name         string
	Organization string
	ProviderName string
}

// Branch represents a branch entry returned by a provider.
type Branch struct {
	Name string
}
