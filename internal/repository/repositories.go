package repository

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Executor *Executor

	Pages        *Table
	Posts        *Table
	Projects     *Table
	Images       *Table
	Categories   *Table
	Technologies *Table

	Associations *AssociationRepository
}

// NewRepositories builds every repository over the server's store.
func NewRepositories(s *server.Server) *Repositories {
	var slowQuery time.Duration
	if s.Config.Observability != nil {
		slowQuery = s.Config.Observability.Logging.SlowQueryThreshold
	}
	return NewRepositoriesFor(s.Store, s.Logger, slowQuery)
}

// NewRepositoriesFor builds every repository over store directly.
func NewRepositoriesFor(store database.Store, logger *zerolog.Logger, slowQuery time.Duration) *Repositories {
	exec := NewExecutor(store, logger, slowQuery)
	return &Repositories{
		Executor:     exec,
		Pages:        NewTable("Page", exec),
		Posts:        NewTable("Post", exec),
		Projects:     NewTable("Project", exec),
		Images:       NewTable("Image", exec),
		Categories:   NewTable("Category", exec),
		Technologies: NewTable("Technology", exec),
		Associations: NewAssociationRepository(exec),
	}
}
