package odata

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// EDMX ($metadata) document shapes. Only the members the fetch path needs are
// decoded: entity types with their declared properties, entity sets and
// function imports.
type edmxDocument struct {
	XMLName      xml.Name `xml:"Edmx"`
	DataServices struct {
		Schemas []edmxSchema `xml:"Schema"`
	} `xml:"DataServices"`
}

type edmxSchema struct {
	Namespace   string           `xml:"Namespace,attr"`
	EntityTypes []edmxEntityType `xml:"EntityType"`
	Containers  []edmxContainer  `xml:"EntityContainer"`
}

type edmxEntityType struct {
	Name       string         `xml:"Name,attr"`
	Properties []edmxProperty `xml:"Property"`
	NavProps   []edmxNavProp  `xml:"NavigationProperty"`
}

type edmxProperty struct {
	Name string `xml:"Name,attr"`
	Type string `xml:"Type,attr"`
}

type edmxNavProp struct {
	Name string `xml:"Name,attr"`
}

type edmxContainer struct {
	EntitySets      []edmxEntitySet      `xml:"EntitySet"`
	FunctionImports []edmxFunctionImport `xml:"FunctionImport"`
}

type edmxEntitySet struct {
	Name       string `xml:"Name,attr"`
	EntityType string `xml:"EntityType,attr"`
}

type edmxFunctionImport struct {
	Name       string `xml:"Name,attr"`
	ReturnType string `xml:"ReturnType,attr"`
	HTTPMethod string `xml:"HttpMethod,attr"`
}

// Property is a declared structural property of an entity type.
type Property struct {
	Name string
	Type string
}

// EntityType is a named record type with its declared properties in document
// order.
type EntityType struct {
	Name       string
	properties []Property
	navOrder   []string
	navs       map[string]struct{}
}

// Properties returns the declared structural properties in declaration order.
func (et *EntityType) Properties() []Property {
	return et.properties
}

// HasNavigation reports whether the entity type declares the named navigation
// property.
func (et *EntityType) HasNavigation(name string) bool {
	_, ok := et.navs[name]
	return ok
}

// EntitySet is a named collection of one entity type.
type EntitySet struct {
	Name       string
	entityType *EntityType
}

// EntityType returns the set's declared entity type.
func (es *EntitySet) EntityType() *EntityType {
	return es.entityType
}

// FunctionImport is an RPC-style OData operation.
type FunctionImport struct {
	Name       string
	ReturnType string
	HTTPMethod string
}

// Schema is the parsed service schema with explicit name lookup tables for
// entity sets and function imports.
type Schema struct {
	entitySets      map[string]*EntitySet
	setOrder        []string
	functionImports map[string]*FunctionImport
}

// EntitySet looks up an entity set by name.
func (s *Schema) EntitySet(name string) (*EntitySet, bool) {
	es, ok := s.entitySets[name]
	return es, ok
}

// EntitySets returns all entity sets in container declaration order.
func (s *Schema) EntitySets() []*EntitySet {
	out := make([]*EntitySet, 0, len(s.setOrder))
	for _, n := range s.setOrder {
		out = append(out, s.entitySets[n])
	}
	return out
}

// FunctionImport looks up a function import by name.
func (s *Schema) FunctionImport(name string) (*FunctionImport, bool) {
	fi, ok := s.functionImports[name]
	return fi, ok
}

// ParseMetadata decodes an EDMX $metadata document into a Schema. Entity type
// references are resolved across all schemas in the document; the namespace
// prefix of a Type attribute is ignored for resolution.
func ParseMetadata(data []byte) (*Schema, error) {
	var doc edmxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("odata: decoding $metadata: %w", err)
	}
	if len(doc.DataServices.Schemas) == 0 {
		return nil, fmt.Errorf("odata: $metadata contains no schema")
	}

	types := map[string]*EntityType{}
	for _, sc := range doc.DataServices.Schemas {
		for _, xt := range sc.EntityTypes {
			et := &EntityType{
				Name: xt.Name,
				navs: map[string]struct{}{},
			}
			for _, p := range xt.Properties {
				et.properties = append(et.properties, Property{Name: p.Name, Type: p.Type})
			}
			for _, np := range xt.NavProps {
				et.navOrder = append(et.navOrder, np.Name)
				et.navs[np.Name] = struct{}{}
			}
			types[xt.Name] = et
		}
	}

	schema := &Schema{
		entitySets:      map[string]*EntitySet{},
		functionImports: map[string]*FunctionImport{},
	}
	for _, sc := range doc.DataServices.Schemas {
		for _, cont := range sc.Containers {
			for _, xs := range cont.EntitySets {
				et, ok := types[localName(xs.EntityType)]
				if !ok {
					return nil, fmt.Errorf("odata: entity set %q references unknown entity type %q", xs.Name, xs.EntityType)
				}
				if _, dup := schema.entitySets[xs.Name]; !dup {
					schema.setOrder = append(schema.setOrder, xs.Name)
				}
				schema.entitySets[xs.Name] = &EntitySet{Name: xs.Name, entityType: et}
			}
			for _, xf := range cont.FunctionImports {
				method := xf.HTTPMethod
				if method == "" {
					method = "GET"
				}
				schema.functionImports[xf.Name] = &FunctionImport{
					Name:       xf.Name,
					ReturnType: xf.ReturnType,
					HTTPMethod: method,
				}
			}
		}
	}
	return schema, nil
}

// localName strips the namespace qualifier from a Type attribute
// ("ZGW_SRV.Customer" -> "Customer").
func localName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
