package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultLibraryDir is where relative ebook paths are resolved
	DefaultLibraryDir = "./books_storage"

	// DefaultContentMaxBytes caps the size of a single ebook file (64 MiB)
	DefaultContentMaxBytes = 64 << 20

	// DefaultTasksDatabasePath is the backlite queue database
	DefaultTasksDatabasePath = "./bookshelf-tasks.db"
)
