package executor

import (
	schema "github.com/hanpama/bookgraph/internal/schema"
)

// collectedFieldMap preserves field order from the original query
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

type collectedField struct {
	ResponseName string
	Fields       []*Selection
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{
		fields: make([]collectedField, 0),
		index:  make(map[string]int),
	}
}

func (cfm *collectedFieldMap) add(responseName string, field *Selection) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
	} else {
		cfm.index[responseName] = len(cfm.fields)
		cfm.fields = append(cfm.fields, collectedField{
			ResponseName: responseName,
			Fields:       []*Selection{field},
		})
	}
}

func (cfm *collectedFieldMap) orderedFields() []collectedField {
	return cfm.fields
}

// collectFields groups the selections that apply to objectType by response
// name, in first-request order. Fields requested through a fragment on a
// different type are dropped.
func collectFields(objectType *schema.Type, selectionSet SelectionSet) []collectedField {
	grouped := newCollectedFieldMap()
	for _, sel := range selectionSet {
		if sel == nil {
			continue
		}
		if sel.TypeCondition != "" && sel.TypeCondition != objectType.Name {
			continue
		}
		grouped.add(sel.ResponseName(), sel)
	}
	return grouped.orderedFields()
}

// mergeSelectionSets merges selection sets from multiple fields
func mergeSelectionSets(fields []*Selection) SelectionSet {
	var merged SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}
