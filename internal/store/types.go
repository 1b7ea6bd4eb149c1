package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
	DBTypeRedis    DatabaseType = "redis"
	DBTypeJSON     DatabaseType = "json"
	DBTypeMemory   DatabaseType = "memory"
)

// Names of the two persisted documents.
const (
	TraineesDocument = "trainees"
	CoursesDocument  = "courses"
)

// Document is one named collection snapshot as stored by the SQL backends.
type Document struct {
	Name      string `db:"name"`
	Body      string `db:"body"`
	UpdatedAt int64  `db:"updated_at"`
}
