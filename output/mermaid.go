package output

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "(", "_", ")", "_", "[", "_", "]", "_", " ", "_", "@", "at", "$", "_", "/", "_", "-", "_")
	return "n_" + r.Replace(id)
}

func getNodeShape(sym *model.ClassSymbol) string {
	label := fmt.Sprintf("%s <small>(%s)</small>", sym.Name, sym.Kind)
	switch {
	case sym.Origin == model.OriginExternal:
		return fmt.Sprintf("[/\"%s\"/]", label)
	case sym.Origin == model.OriginBuiltin:
		return fmt.Sprintf("([\"%s\"])", label)
	case sym.Kind == model.Interface:
		return fmt.Sprintf("{{\"%s\"}}", label)
	default:
		return fmt.Sprintf("[\"%s\"]", label)
	}
}

// WriteMermaidHTML 输出继承/混入关系图，源码类型按文件分组，出问题的 MIXIN 边标注诊断类型
func WriteMermaidHTML(outputPath string, gCtx *core.GlobalContext, rels []*model.DependencyRelation, diags []model.Diagnostic) (int, error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Fprintln(w, `<!DOCTYPE html><html><head><meta charset="UTF-8"><script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script></head>
<body><div class="mermaid">graph BT`)

	// 1. 源码节点，按文件分组
	declared := make(map[string]bool)
	paths := make([]string, 0, len(gCtx.FileContexts))
	for p := range gCtx.FileContexts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fCtx := gCtx.FileContexts[p]
		fmt.Fprintf(w, "  subgraph %s [📄 %s]\n", safeID(fCtx.FilePath), fCtx.FilePath)
		for _, entry := range fCtx.Definitions {
			if declared[entry.Element.QualifiedName] {
				continue
			}
			declared[entry.Element.QualifiedName] = true
			fmt.Fprintf(w, "    %s%s\n", safeID(entry.Element.QualifiedName), getNodeShape(entry.Element))
		}
		fmt.Fprintln(w, "  end")
	}

	// 2. 关系中出现的内置/外部节点
	for _, rel := range rels {
		for _, sym := range []*model.ClassSymbol{rel.Source, rel.Target} {
			if !declared[sym.QualifiedName] {
				declared[sym.QualifiedName] = true
				fmt.Fprintf(w, "  %s%s\n", safeID(sym.QualifiedName), getNodeShape(sym))
			}
		}
	}

	// 3. 边
	offending := make(map[string]model.DiagnosticKind)
	for _, d := range diags {
		if d.Inspection == model.InspectionSuperClass {
			offending[d.Mixin+"->"+d.Target] = d.Kind
		}
	}
	relCount := 0
	for _, rel := range rels {
		srcID, tgtID := safeID(rel.Source.QualifiedName), safeID(rel.Target.QualifiedName)
		if srcID == tgtID {
			continue
		}
		if kind, bad := offending[rel.Source.QualifiedName+"->"+rel.Target.QualifiedName]; bad && rel.Type == model.Mixin {
			fmt.Fprintf(w, "  %s -. %s: %s .-> %s\n", srcID, rel.Type, kind, tgtID)
		} else if rel.Type == model.Mixin {
			fmt.Fprintf(w, "  %s -. %s .-> %s\n", srcID, rel.Type, tgtID)
		} else {
			fmt.Fprintf(w, "  %s -- %s --> %s\n", srcID, rel.Type, tgtID)
		}
		relCount++
	}

	fmt.Fprintln(w, `</div><script>mermaid.initialize({startOnLoad:true, maxTextSize:1000000});</script></body></html>`)
	return relCount, w.Flush()
}
