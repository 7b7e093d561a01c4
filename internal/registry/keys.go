package registry

import (
	"github.com/nfrund/gallery/internal/gallery"
)

// Services shared between modules.
var (
	SynchronizerKey = Key[*gallery.Synchronizer]("gallery.synchronizer")
)
