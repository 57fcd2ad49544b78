package cache

// Manager defines the interface for the on-disk artifact store.
type Manager interface {
	GetDirectory() string
	SetDirectory(dir string) error
	Exists() (bool, error)
	Ensure() error
	Path(ts uint64) string
	Has(ts uint64) (bool, error)
	Save(ts uint64, data []byte) (string, error)
	Names() ([]string, error)
	Latest() (*Artifact, error)
	Reset() error
	GetInfo() (*Info, error)
}

// Artifact is one cached ACIR capture, identified by its timestamp.
type Artifact struct {
	Timestamp uint64
	Name      string
	Path      string
}

// Info represents cache information.
type Info struct {
	Directory string
	Exists    bool
	Artifacts int
	TotalSize int64
	Oldest    uint64
	Newest    uint64
}
