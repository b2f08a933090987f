package domain

import "path/filepath"

const (
	// WorkspaceDirName is the name of the internal workspace directory.
	WorkspaceDirName = ".snc"

	// StoreDirName is the name of the artifact store directory.
	StoreDirName = "store"

	// ArtifactsDirName is the directory for emitted artifact source files.
	ArtifactsDirName = "artifacts"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "snc.yaml"

	// StateDBFileName is the name of the sqlite state database.
	StateDBFileName = "state.db"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultWorkspacePath returns the default root directory for engine metadata.
func DefaultWorkspacePath() string {
	return WorkspaceDirName
}

// DefaultStorePath returns the default path for the artifact store.
// It joins .snc and store.
func DefaultStorePath() string {
	return filepath.Join(WorkspaceDirName, StoreDirName)
}

// DefaultArtifactsPath returns the default path for emitted artifact sources.
// It joins .snc and artifacts.
func DefaultArtifactsPath() string {
	return filepath.Join(WorkspaceDirName, ArtifactsDirName)
}

// DefaultStateDBPath returns the default path for the sqlite state database.
// It joins .snc and state.db.
func DefaultStateDBPath() string {
	return filepath.Join(WorkspaceDirName, StateDBFileName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .snc and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(WorkspaceDirName, DebugLogFile)
}
