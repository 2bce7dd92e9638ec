package contextkeys

type ContextKey string

const (
	// DBContextKey carries the *gorm.DB handle (the connection pool, or a
	// per-request transaction injected by tests) through gin contexts.
	DBContextKey ContextKey = "db"
)
