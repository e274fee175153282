// Package validation checks block patches against per-type JSON schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid = errors.New("validation: schema invalid")
	ErrPatchRejected = errors.New("validation: patch rejected")
)

// Issue is one failed schema keyword, located by JSON pointer.
type Issue struct {
	Pointer string
	Message string
}

func (i Issue) String() string {
	pointer := i.Pointer
	if pointer == "" {
		pointer = "/"
	}
	return pointer + ": " + i.Message
}

// PatchError lists every issue found in a patch for one block type.
type PatchError struct {
	Key    string
	Issues []Issue
}

func (e *PatchError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", e.Key, strings.Join(parts, "; "))
}

func (e *PatchError) Unwrap() error { return ErrPatchRejected }

// Validator holds compiled schemas keyed by block type.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
}

// NewValidator returns an empty validator.
func NewValidator() *Validator {
	return &Validator{schemas: map[string]*jsonschema.Schema{}}
}

// Register compiles schema and stores it under key, replacing any previous one.
func (v *Validator) Register(key string, schema map[string]any) error {
	key = strings.TrimSpace(key)
	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, key, err)
	}
	url := "mem://blocks/" + key + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, key, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, key, err)
	}

	v.mu.Lock()
	v.schemas[key] = compiled
	v.mu.Unlock()
	return nil
}

// Validate checks patch against the schema for key. A key without a schema
// accepts anything.
func (v *Validator) Validate(key string, patch map[string]any) error {
	v.mu.RLock()
	compiled := v.schemas[strings.TrimSpace(key)]
	v.mu.RUnlock()
	if compiled == nil {
		return nil
	}

	doc, err := asJSON(patch)
	if err != nil {
		return &PatchError{Key: key, Issues: []Issue{{Message: err.Error()}}}
	}
	err = compiled.Validate(doc)
	if err == nil {
		return nil
	}
	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return &PatchError{Key: key, Issues: []Issue{{Message: err.Error()}}}
	}
	return &PatchError{Key: key, Issues: leafIssues(schemaErr, nil)}
}

// WithoutRequired drops the top-level "required" list so a schema can check
// partial patches. The input is not modified.
func WithoutRequired(schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	out := make(map[string]any, len(schema))
	for key, value := range schema {
		if key != "required" {
			out[key] = value
		}
	}
	return out
}

// asJSON turns typed Go values into the generic shape the schema walks.
func asJSON(patch map[string]any) (any, error) {
	if patch == nil {
		patch = map[string]any{}
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func leafIssues(node *jsonschema.ValidationError, out []Issue) []Issue {
	if len(node.Causes) == 0 {
		return append(out, Issue{Pointer: node.InstanceLocation, Message: node.Message})
	}
	for _, cause := range node.Causes {
		out = leafIssues(cause, out)
	}
	return out
}
