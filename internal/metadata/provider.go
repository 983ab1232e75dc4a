package metadata

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/mimic/internal/engine"
	"github.com/roach88/mimic/internal/record"
)

// Provider resolves entity and attribute metadata for the store and the
// query engine. It is immutable after construction; concurrent lookups
// need no locking.
type Provider struct {
	entities map[string]*record.EntityMeta
}

// NewProvider wraps an already-built metadata set.
func NewProvider(entities map[string]*record.EntityMeta) *Provider {
	return &Provider{entities: entities}
}

// CompileSource compiles CUE entity declarations from a source string.
func CompileSource(source string) (*Provider, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(source)
	entities, err := CompileEntities(v)
	if err != nil {
		return nil, err
	}
	return NewProvider(entities), nil
}

// LoadFile compiles CUE entity declarations from a file.
func LoadFile(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileString(string(data), cue.Filename(path))
	entities, err := CompileEntities(v)
	if err != nil {
		return nil, err
	}
	return NewProvider(entities), nil
}

// Entity resolves one entity's metadata.
func (p *Provider) Entity(logicalName string) (*record.EntityMeta, error) {
	meta, ok := p.entities[logicalName]
	if !ok {
		return nil, engine.NewUnknownEntityError(logicalName)
	}
	return meta, nil
}

// Attribute resolves one attribute's metadata.
func (p *Provider) Attribute(entity, attribute string) (record.AttributeMeta, error) {
	meta, err := p.Entity(entity)
	if err != nil {
		return record.AttributeMeta{}, err
	}
	attr, ok := meta.Attribute(attribute)
	if !ok {
		return record.AttributeMeta{}, engine.NewUnknownAttributeError(entity, attribute)
	}
	return attr, nil
}

// Relationship resolves a join descriptor by schema name, searching the
// referenced side of every entity.
func (p *Provider) Relationship(schemaName string) (*record.Relationship, error) {
	for _, meta := range p.entities {
		for i := range meta.Relationships {
			if meta.Relationships[i].SchemaName == schemaName {
				return &meta.Relationships[i], nil
			}
		}
	}
	return nil, fmt.Errorf("relationship %q not declared", schemaName)
}

// Entities returns the logical names of every declared entity.
func (p *Provider) Entities() []string {
	names := make([]string, 0, len(p.entities))
	for name := range p.entities {
		names = append(names, name)
	}
	return names
}
