package domain

// DefaultKeyPrefix namespaces all database keys.
const DefaultKeyPrefix = "prism:"
