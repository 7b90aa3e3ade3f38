package common

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	propDescription    = "description"
	propSourceDocument = "source_paper"
)

// Properties is an open property bag that keeps insertion order and
// serializes to a JSON object. Setting an existing key replaces its value in
// place.
type Properties = orderedmap.OrderedMap[string, any]

// NewProperties returns an empty Properties.
func NewProperties() *Properties {
	return orderedmap.New[string, any]()
}

// NodeProperties is the property bag stored with a node. The fields the
// pipeline knows about are explicit; anything else is kept in Extra in the
// order it was encountered.
type NodeProperties struct {
	Description    string
	SourceDocument string
	Extra          *Properties
}

func (n NodeProperties) MarshalJSON() ([]byte, error) {
	props := NewProperties()
	if n.Description != "" {
		props.Set(propDescription, n.Description)
	}
	if n.SourceDocument != "" {
		props.Set(propSourceDocument, n.SourceDocument)
	}
	if n.Extra != nil {
		for pair := n.Extra.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key == propDescription || pair.Key == propSourceDocument {
				continue
			}
			props.Set(pair.Key, pair.Value)
		}
	}
	return props.MarshalJSON()
}

func (n *NodeProperties) UnmarshalJSON(data []byte) error {
	*n = NodeProperties{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	props := NewProperties()
	if err := props.UnmarshalJSON(data); err != nil {
		return err
	}

	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case propDescription:
			if s, ok := pair.Value.(string); ok {
				n.Description = s
			}
		case propSourceDocument:
			if s, ok := pair.Value.(string); ok {
				n.SourceDocument = s
			}
		default:
			if n.Extra == nil {
				n.Extra = NewProperties()
			}
			n.Extra.Set(pair.Key, pair.Value)
		}
	}
	return nil
}
