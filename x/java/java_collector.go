package java

import (
	"strings"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

type Collector struct {
	resolver core.SymbolResolver
}

func NewJavaCollector() *Collector {
	return &Collector{resolver: NewJavaSymbolResolver()}
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

func (c *Collector) CollectDefinitions(rootNode *sitter.Node, filePath string, sourceBytes *[]byte) (*core.FileContext, error) {
	fCtx := core.NewFileContext(filePath)
	src := *sourceBytes

	// 第一步：提取包名与导入 (Top-level)
	c.processTopLevelDeclarations(rootNode, fCtx, src)

	// 第二步：深度优先遍历类型声明，构建 QN 与元数据
	for i := uint(0); i < rootNode.NamedChildCount(); i++ {
		c.collectTypeDeclaration(rootNode.NamedChild(i), fCtx, fCtx.PackageName, src)
	}

	return fCtx, nil
}

func (c *Collector) processTopLevelDeclarations(root *sitter.Node, fCtx *core.FileContext, src []byte) {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "package_declaration":
			if ident := c.findNamedChildOfType(child, "scoped_identifier"); ident != nil {
				fCtx.PackageName = c.getNodeContent(ident, src)
			} else if ident := c.findNamedChildOfType(child, "identifier"); ident != nil {
				fCtx.PackageName = c.getNodeContent(ident, src)
			}
		case "import_declaration":
			c.handleImport(child, fCtx, src)
		}
	}
}

// collectTypeDeclaration 只识别类型声明；方法体内的局部类与匿名类不参与 Mixin 分析
func (c *Collector) collectTypeDeclaration(node *sitter.Node, fCtx *core.FileContext, parentQN string, src []byte) {
	if node == nil {
		return
	}
	kind := c.identifyTypeKind(node.Kind())
	if kind == "" {
		return
	}
	name := c.getNodeContent(node.ChildByFieldName("name"), src)
	if name == "" {
		return
	}

	elem := &model.ClassSymbol{
		Kind:          kind,
		Name:          name,
		QualifiedName: c.resolver.BuildQualifiedName(parentQN, name),
		Path:          fCtx.FilePath,
		Origin:        model.OriginSource,
		Location:      c.extractLocation(node, fCtx.FilePath),
	}
	entry := &core.DefinitionEntry{Element: elem, ParentQN: parentQN}

	c.fillHeritage(entry, node, fCtx, src)
	entry.Annotations = c.extractAnnotations(node, fCtx, src)
	entry.TypeParams = c.extractTypeParameters(node, src)
	if kind == model.Record {
		elem.Fields = append(elem.Fields, c.extractRecordComponents(node, src)...)
	}

	fCtx.AddDefinition(entry)

	if body := node.ChildByFieldName("body"); body != nil {
		c.collectBody(body, entry, fCtx, src)
	}
}

// collectBody 收集字段、方法，并递归进入嵌套类型
func (c *Collector) collectBody(body *sitter.Node, owner *core.DefinitionEntry, fCtx *core.FileContext, src []byte) {
	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		switch member.Kind() {
		case "field_declaration", "constant_declaration":
			owner.Element.Fields = append(owner.Element.Fields, c.extractDeclaratorNames(member, src)...)
		case "enum_constant":
			if n := c.getNodeContent(member.ChildByFieldName("name"), src); n != "" {
				owner.Element.Fields = append(owner.Element.Fields, n)
			}
		case "method_declaration":
			owner.Methods = append(owner.Methods, &core.MethodEntry{
				Name:        c.getNodeContent(member.ChildByFieldName("name"), src),
				Annotations: c.extractAnnotations(member, fCtx, src),
				Location:    c.extractLocation(member, fCtx.FilePath),
			})
		default:
			if typeBodyKinds[member.Kind()] {
				c.collectBody(member, owner, fCtx, src)
				continue
			}
			c.collectTypeDeclaration(member, fCtx, owner.Element.QualifiedName, src)
		}
	}
}

// ==========================================
// 2. 元素识别逻辑 (Element Identification)
// ==========================================

func (c *Collector) identifyTypeKind(kindStr string) model.ElementKind {
	switch kindStr {
	case "class_declaration":
		return model.Class
	case "interface_declaration":
		return model.Interface
	case "enum_declaration":
		return model.Enum
	case "record_declaration":
		return model.Record
	case "annotation_type_declaration":
		return model.KAnnotation
	}
	return ""
}

// ==========================================
// 3. 继承信息 (Heritage)
// ==========================================

func (c *Collector) fillHeritage(entry *core.DefinitionEntry, node *sitter.Node, fCtx *core.FileContext, src []byte) {
	// 只有 class 才有 superclass 字段；接口的 extends 记为接口列表
	if super := node.ChildByFieldName("superclass"); super != nil {
		if typeNode := c.firstNamedChild(super); typeNode != nil {
			entry.Element.SuperclassRaw = strings.TrimSpace(c.getNodeContent(typeNode, src))
			entry.SuperclassSpan = c.extractLocation(typeNode, fCtx.FilePath)
		}
	}

	if ifacesNode := c.findInterfacesNode(node); ifacesNode != nil {
		entry.InterfacesRaw = c.extractInterfaceListFromNode(ifacesNode, src)
	}
}

func (c *Collector) findInterfacesNode(node *sitter.Node) *sitter.Node {
	if n := node.ChildByFieldName("interfaces"); n != nil {
		return n
	}
	return c.findNamedChildOfType(node, "extends_interfaces")
}

func (c *Collector) extractInterfaceListFromNode(node *sitter.Node, src []byte) []string {
	var results []string
	target := node
	if node.Kind() != "type_list" {
		if listNode := c.findNamedChildOfType(node, "type_list"); listNode != nil {
			target = listNode
		}
	}
	for i := uint(0); i < target.NamedChildCount(); i++ {
		child := target.NamedChild(i)
		if strings.Contains(child.Kind(), "type") {
			results = append(results, c.getNodeContent(child, src))
		}
	}
	return results
}

func (c *Collector) extractTypeParameters(node *sitter.Node, src []byte) []string {
	tpNode := node.ChildByFieldName("type_parameters")
	if tpNode == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < tpNode.NamedChildCount(); i++ {
		tp := tpNode.NamedChild(i)
		if tp.Kind() != "type_parameter" {
			continue
		}
		if ident := c.findNamedChildOfType(tp, "type_identifier"); ident != nil {
			names = append(names, c.getNodeContent(ident, src))
		} else if ident := c.findNamedChildOfType(tp, "identifier"); ident != nil {
			names = append(names, c.getNodeContent(ident, src))
		}
	}
	return names
}

// ==========================================
// 4. 注解解析 (Annotations)
// ==========================================

func (c *Collector) extractAnnotations(node *sitter.Node, fCtx *core.FileContext, src []byte) []*core.AnnotationEntry {
	mNode := c.findNamedChildOfType(node, "modifiers")
	if mNode == nil {
		return nil
	}
	var annos []*core.AnnotationEntry
	for i := uint(0); i < mNode.NamedChildCount(); i++ {
		child := mNode.NamedChild(i)
		if child.Kind() != "annotation" && child.Kind() != "marker_annotation" {
			continue
		}
		anno := &core.AnnotationEntry{
			Name:     strings.TrimSpace(c.getNodeContent(child.ChildByFieldName("name"), src)),
			Values:   make(map[string][]core.AnnotationValue),
			Location: c.extractLocation(child, fCtx.FilePath),
		}
		if args := child.ChildByFieldName("arguments"); args != nil {
			c.fillAnnotationArguments(anno, args, fCtx, src)
		}
		annos = append(annos, anno)
	}
	return annos
}

func (c *Collector) fillAnnotationArguments(anno *core.AnnotationEntry, args *sitter.Node, fCtx *core.FileContext, src []byte) {
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		if c.isComment(arg) {
			continue
		}
		if arg.Kind() == "element_value_pair" {
			key := c.getNodeContent(arg.ChildByFieldName("key"), src)
			anno.Values[key] = append(anno.Values[key], c.extractElementValues(arg.ChildByFieldName("value"), fCtx, src)...)
			continue
		}
		anno.Values[AttrValue] = append(anno.Values[AttrValue], c.extractElementValues(arg, fCtx, src)...)
	}
}

// extractElementValues 展开数组初始化器，按书写顺序返回
func (c *Collector) extractElementValues(node *sitter.Node, fCtx *core.FileContext, src []byte) []core.AnnotationValue {
	if node == nil || c.isComment(node) {
		return nil
	}
	loc := c.extractLocation(node, fCtx.FilePath)
	switch node.Kind() {
	case "element_value_array_initializer":
		var values []core.AnnotationValue
		for i := uint(0); i < node.NamedChildCount(); i++ {
			values = append(values, c.extractElementValues(node.NamedChild(i), fCtx, src)...)
		}
		return values
	case "class_literal":
		typeText := strings.TrimSuffix(strings.TrimSpace(c.getNodeContent(node, src)), ".class")
		if typeNode := c.firstNamedChild(node); typeNode != nil {
			typeText = c.getNodeContent(typeNode, src)
		}
		return []core.AnnotationValue{{Kind: core.ValueClassLiteral, Text: strings.TrimSpace(typeText), Location: loc}}
	case "string_literal":
		return []core.AnnotationValue{{Kind: core.ValueString, Text: c.unquote(c.getNodeContent(node, src)), Location: loc}}
	}
	return []core.AnnotationValue{{Kind: core.ValueOther, Text: c.getNodeContent(node, src), Location: loc}}
}

// ==========================================
// 5. 辅助工具逻辑 (Helper Utilities)
// ==========================================

func (c *Collector) handleImport(node *sitter.Node, fCtx *core.FileContext, src []byte) {
	isStatic := false
	var pathParts []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		kind := child.Kind()
		if kind == "static" {
			isStatic = true
			continue
		}
		if kind == "scoped_identifier" || kind == "identifier" || kind == "asterisk" {
			pathParts = append(pathParts, c.getNodeContent(child, src))
		}
	}
	if len(pathParts) == 0 {
		return
	}
	fullPath := strings.Join(pathParts, ".")
	isWildcard := pathParts[len(pathParts)-1] == "*"
	entry := &core.ImportEntry{
		RawImportPath: fullPath,
		IsWildcard:    isWildcard,
		IsStatic:      isStatic,
		Location:      c.extractLocation(node, fCtx.FilePath),
	}
	var alias string
	if isWildcard {
		alias = "*"
		entry.Kind = model.Package
	} else {
		alias = model.ShortName(fullPath)
		entry.Kind = model.Class
		if isStatic {
			entry.Kind = model.Field
		}
	}
	entry.Alias = alias
	fCtx.AddImport(alias, entry)
}

func (c *Collector) extractDeclaratorNames(node *sitter.Node, src []byte) []string {
	var names []string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		if n := c.getNodeContent(child.ChildByFieldName("name"), src); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func (c *Collector) extractRecordComponents(node *sitter.Node, src []byte) []string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < params.NamedChildCount(); i++ {
		if n := c.getNodeContent(params.NamedChild(i).ChildByFieldName("name"), src); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ==========================================
// 6. 原子辅助函数 (Atomic Helpers)
// ==========================================

func (c *Collector) unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimSuffix(s, `"""`), `"""`)
	return strings.Trim(s, `"`)
}

func (c *Collector) isComment(n *sitter.Node) bool {
	return n.Kind() == "line_comment" || n.Kind() == "block_comment"
}

func (c *Collector) getNodeContent(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(src)
}

func (c *Collector) firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if !c.isComment(child) {
			return child
		}
	}
	return nil
}

func (c *Collector) findNamedChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

func (c *Collector) extractLocation(n *sitter.Node, filePath string) *model.Location {
	return &model.Location{
		FilePath:    filePath,
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}
