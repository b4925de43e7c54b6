package mysql

import (
	"fmt"
	"strings"

	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/ir"
)

// indexKind is one entry of the MySQL index type table
type indexKind struct {
	name    string
	keyword string
	aliases []string
	primary bool
}

var _ ddl.IndexRenderer = (*indexKind)(nil)

var indexKindTable = []indexKind{
	{name: "PRIMARY", keyword: "PRIMARY KEY", aliases: []string{"PRIMARY KEY", "PK"}, primary: true},
	{name: "UNIQUE", keyword: "UNIQUE KEY", aliases: []string{"UNIQUE KEY", "UNIQUE INDEX", "UNIQ"}},
	{name: "NORMAL", keyword: "KEY", aliases: []string{"INDEX", "KEY"}},
	{name: "FULLTEXT", keyword: "FULLTEXT KEY", aliases: []string{"FULLTEXT INDEX", "FULLTEXT KEY"}},
	{name: "SPATIAL", keyword: "SPATIAL KEY", aliases: []string{"SPATIAL INDEX", "SPATIAL KEY"}},
}

// IndexTypes resolves MySQL index kinds to their renderers
type IndexTypes struct {
	kinds map[string]*indexKind
}

var _ ddl.IndexTypeResolver = (*IndexTypes)(nil)

// NewIndexTypes returns a resolver over every MySQL index kind
func NewIndexTypes() *IndexTypes {
	r := &IndexTypes{kinds: make(map[string]*indexKind)}
	for i := range indexKindTable {
		k := &indexKindTable[i]
		r.kinds[k.name] = k
		for _, alias := range k.aliases {
			r.kinds[alias] = k
		}
	}
	return r
}

// ResolveIndex looks up the renderer for an index kind such as "primary" or "unique_key"
func (r *IndexTypes) ResolveIndex(indexType string) (ddl.IndexRenderer, error) {
	key := strings.Join(strings.Fields(strings.ToUpper(strings.ReplaceAll(indexType, "_", " "))), " ")
	if k, ok := r.kinds[key]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("%w: %q", ddl.ErrUnknownIndexType, indexType)
}

// Definition renders the inline key clause for CREATE TABLE
func (k *indexKind) Definition(index *ir.Index) string {
	var sb strings.Builder
	sb.WriteString(k.keyword)
	if !k.primary {
		sb.WriteString(" ")
		sb.WriteString(ir.QuoteIdentifier(index.Name))
	}
	sb.WriteString(" (")
	sb.WriteString(ir.QuoteIdentifierList(index.Columns))
	sb.WriteString(")")

	if !ddl.IsBlank(index.Method) {
		sb.WriteString(" USING ")
		sb.WriteString(strings.ToUpper(strings.TrimSpace(index.Method)))
	}
	if !ddl.IsBlank(index.Comment) {
		sb.WriteString(" COMMENT ")
		sb.WriteString(ir.QuoteString(index.Comment))
	}
	return sb.String()
}

// Modify renders the ALTER TABLE clause for the index's edit status.
// MySQL cannot alter an index in place, so a modified index is dropped and re-added.
func (k *indexKind) Modify(index *ir.Index) string {
	switch index.EditStatus {
	case ir.EditStatusAdded:
		return "ADD " + k.Definition(index)
	case ir.EditStatusDeleted:
		return k.drop(index)
	}
	return k.drop(index) + ", ADD " + k.Definition(index)
}

func (k *indexKind) drop(index *ir.Index) string {
	if k.primary {
		return "DROP PRIMARY KEY"
	}
	name := index.Name
	if !ddl.IsBlank(index.OldName) {
		name = index.OldName
	}
	return "DROP INDEX " + ir.QuoteIdentifier(name)
}
