package remotetest

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Seed is the YAML document the stub can be populated from:
//
//	me:
//	  id: u1
//	  name: Jacques
//	users:
//	  - id: u2
//	    name: Ada
//	cards:
//	  - name: Peaks
//	    link: https://example.com/peaks.jpg
//	    owner: u2
//	    likes: [u1]
type Seed struct {
	Me    User   `yaml:"me"`
	Users []User `yaml:"users"`
	Cards []Card `yaml:"cards"`
}

// LoadSeed reads and decodes a seed file from fs.
func LoadSeed(fs afero.Fs, path string) (Seed, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed %s: %w", path, err)
	}
	if seed.Me.ID == "" {
		return Seed{}, fmt.Errorf("seed %s: me.id is required", path)
	}
	return seed, nil
}
