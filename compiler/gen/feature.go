package gen

import (
	"os"
	"path/filepath"
)

// RegistryFile is the name of the file registering all generated tables
// with the runtime type registry.
const RegistryFile = "zerobuf_registry.go"

var (
	// FeatureSignals provides a feature-flag for the change notification
	// layer: a Signal per member, emitted after every setter.
	FeatureSignals = Feature{
		Name:        "signals",
		Stage:       Stable,
		Default:     false,
		Description: "Signals adds a Signal per member to every table, emitted after each setter",
	}

	// FeatureSchema provides a feature-flag for the JSON schema of every
	// table, returned by the generated Schema method.
	FeatureSchema = Feature{
		Name:        "jsonschema",
		Stage:       Stable,
		Default:     true,
		Description: "JSONSchema generates a Schema method returning the JSON schema of the table",
	}

	// FeatureRegistry provides a feature-flag for registering the generated
	// tables with the runtime type registry.
	FeatureRegistry = Feature{
		Name:        "registry",
		Stage:       Beta,
		Default:     false,
		Description: "Registry generates a file registering every table for zerobuf.New and zerobuf.Lookup",
		cleanup: func(dir string) error {
			return remove(dir, RegistryFile)
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureSignals,
		FeatureSchema,
		FeatureRegistry,
	}
)

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished,
	// but we expect breaking-changes to their APIs.
	Alpha

	// Beta features are Alpha features that were documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the zerobuf codegen.
type Feature struct {
	// Name of the feature.
	Name string `json:"name" yaml:"name"`

	// Stage of the feature.
	Stage FeatureStage `json:"stage" yaml:"stage"`

	// Default values indicates if this feature is enabled by default.
	Default bool `json:"default" yaml:"default"`

	// A Description of this feature.
	Description string `json:"description" yaml:"description"`

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(dir string) error
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
