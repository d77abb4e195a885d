package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRojoTree indicates a project tree node that is not a JSON object.
var ErrInvalidRojoTree = errors.New("models: rojo tree node must be an object")

// RojoFile represents a Rojo project file such as default.project.json.
type RojoFile struct {
	Name      string   `json:"name"`
	Tree      RojoTree `json:"tree"`
	ServePort *int     `json:"servePort,omitempty"`
}

// RojoTree is a node of a Rojo project tree.
// It is implemented only by RojoMetadata and RojoMembers.
type RojoTree interface {
	rojoTree()
}

// RojoProperty is a typed instance property value.
type RojoProperty struct {
	Type  string `json:"Type"`
	Value any    `json:"Value"`
}

// RojoMetadata is a tree node described by "$"-prefixed keys.
type RojoMetadata struct {
	ClassName              string         `json:"$className,omitempty"`
	Path                   string         `json:"$path,omitempty"`
	Properties             []RojoProperty `json:"$properties,omitempty"`
	IgnoreUnknownInstances *bool          `json:"$ignoreUnknownInstances,omitempty"`
}

// RojoMembers maps child instance names to their nodes.
type RojoMembers map[string]RojoTree

func (RojoMetadata) rojoTree() {}
func (RojoMembers) rojoTree()  {}

// UnmarshalJSON decodes a RojoFile, resolving the tree variant per node.
func (f *RojoFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string          `json:"name"`
		Tree      json.RawMessage `json:"tree"`
		ServePort *int            `json:"servePort"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Name = raw.Name
	f.ServePort = raw.ServePort
	f.Tree = nil
	if len(raw.Tree) == 0 {
		return nil
	}

	tree, err := decodeRojoTree(raw.Tree)
	if err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}
	f.Tree = tree
	return nil
}

// UnmarshalJSON decodes a members node. Each child is resolved independently.
func (m *RojoMembers) UnmarshalJSON(data []byte) error {
	var children map[string]json.RawMessage
	if err := json.Unmarshal(data, &children); err != nil {
		return err
	}
	out := make(RojoMembers, len(children))
	for name, child := range children {
		node, err := decodeRojoTree(child)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out[name] = node
	}
	*m = out
	return nil
}

// decodeRojoTree picks the node variant. An object with any "$" key is a
// metadata node; anything else is a members node.
func decodeRojoTree(data []byte) (RojoTree, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidRojoTree
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, err
	}

	for key := range keys {
		if strings.HasPrefix(key, "$") {
			var meta RojoMetadata
			if err := json.Unmarshal(trimmed, &meta); err != nil {
				return nil, err
			}
			return meta, nil
		}
	}

	var members RojoMembers
	if err := members.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	return members, nil
}
