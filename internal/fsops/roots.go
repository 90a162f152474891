package fsops

import (
	"github.com/petasbytes/schemafix/internal/safety"
)

// Sandbox addresses files by paths relative to a single resolved root.
type Sandbox struct {
	root string
}

// Open resolves root once and returns a Sandbox bound to it. The returned
// error wraps os.ErrNotExist when root is missing and safety.ErrRootNotDir
// when it is not a directory.
func Open(root string) (*Sandbox, error) {
	abs, err := safety.InitRoot(root)
	if err != nil {
		return nil, err
	}
	return &Sandbox{root: abs}, nil
}

// Root returns the absolute, symlink-resolved root.
func (s *Sandbox) Root() string { return s.root }
