package output

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

type OutType string

const (
	Text    OutType = "text"
	JsonL   OutType = "jsonl"
	Mermaid OutType = "mermaid"
)

// ParseOutType 校验输出格式名
func ParseOutType(s string) (OutType, error) {
	switch t := OutType(s); t {
	case Text, JsonL, Mermaid:
		return t, nil
	case "":
		return Text, nil
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

type Exporter struct {
	outputDir    string
	outputType   OutType
	skipExternal bool
}

func NewExporter(outputDir string, outputType OutType, skipExternal bool) *Exporter {
	return &Exporter{outputDir: outputDir, outputType: outputType, skipExternal: skipExternal}
}

// Result 一次导出的统计
type Result struct {
	Files     []string
	Diags     int
	Relations int
}

// Export 文本格式写到 w；jsonl / mermaid 写入 outputDir，并在 w 上输出文本摘要
func (p *Exporter) Export(w io.Writer, gCtx *core.GlobalContext, rels []*model.DependencyRelation, diags []model.Diagnostic) (*Result, error) {
	res := &Result{Diags: len(diags)}
	switch p.outputType {
	case JsonL:
		diagPath := filepath.Join(p.outputDir, "diagnostics.jsonl")
		if _, err := WriteDiagnostics(diagPath, diags); err != nil {
			return nil, err
		}
		relPath := filepath.Join(p.outputDir, "relation.jsonl")
		n, err := WriteRelations(relPath, p.filterRelations(rels))
		if err != nil {
			return nil, err
		}
		res.Files = []string{diagPath, relPath}
		res.Relations = n
	case Mermaid:
		htmlPath := filepath.Join(p.outputDir, "hierarchy.html")
		n, err := WriteMermaidHTML(htmlPath, gCtx, p.filterRelations(rels), diags)
		if err != nil {
			return nil, err
		}
		res.Files = []string{htmlPath}
		res.Relations = n
	}

	if err := WriteText(w, diags); err != nil {
		return nil, err
	}
	return res, nil
}

// GraphSize mermaid 图中实际绘制的节点数与边数：全部源码类型，加上过滤后关系两端的其余节点
func (p *Exporter) GraphSize(gCtx *core.GlobalContext, rels []*model.DependencyRelation) (nodes, edges int) {
	seen := make(map[string]bool)
	for _, fCtx := range gCtx.FileContexts {
		for _, entry := range fCtx.Definitions {
			seen[entry.Element.QualifiedName] = true
		}
	}
	filtered := p.filterRelations(rels)
	for _, rel := range filtered {
		seen[rel.Source.QualifiedName] = true
		seen[rel.Target.QualifiedName] = true
	}
	return len(seen), len(filtered)
}

// filterRelations skipExternal 时只保留两端都是源码类型的边
func (p *Exporter) filterRelations(rels []*model.DependencyRelation) []*model.DependencyRelation {
	if !p.skipExternal {
		return rels
	}
	out := make([]*model.DependencyRelation, 0, len(rels))
	for _, rel := range rels {
		if rel.Source.Origin != model.OriginSource || rel.Target.Origin != model.OriginSource {
			continue
		}
		out = append(out, rel)
	}
	return out
}
